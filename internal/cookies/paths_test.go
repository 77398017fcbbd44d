package cookies

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseProfilesIni(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "elsewhere", "abs.default")

	tests := []struct {
		name    string
		content string
		// want is relative to the ini directory unless absolute.
		want string
	}{
		{
			name: "install section",
			content: "[Install1234ABCD]\nDefault=Profiles/abcd1234.default\n\n" +
				"[Profile0]\nName=default\nIsRelative=1\nPath=Profiles/xyxy0000.other\nDefault=1\n",
			want: "Profiles/abcd1234.default",
		},
		{
			name: "profile marked default",
			content: "[Profile0]\nName=other\nIsRelative=1\nPath=Profiles/aaaa0001.other\n\n" +
				"[Profile1]\nName=default\nIsRelative=1\nPath=Profiles/bbbb0002.default\nDefault=1\n",
			want: "Profiles/bbbb0002.default",
		},
		{
			name: "install wins even when listed last",
			content: "[Profile0]\nPath=Profiles/profile0.default\nDefault=1\n\n" +
				"[InstallXXXX]\nDefault=Profiles/install-profile.default\n",
			want: "Profiles/install-profile.default",
		},
		{
			name:    "absolute profile path",
			content: "[Profile0]\nIsRelative=0\nPath=" + filepath.ToSlash(abs) + "\nDefault=1\n",
			want:    abs,
		},
		{
			name:    "comments ignored",
			content: "; comment\n[Profile0]\n; another\nPath=Profiles/commented.default\nDefault=1\n",
			want:    "Profiles/commented.default",
		},
		{
			name:    "nested forward slashes",
			content: "[InstallABC]\nDefault=Profiles/forward/slash.default\n",
			want:    "Profiles/forward/slash.default",
		},
		{
			name:    "no default profile",
			content: "[Profile0]\nPath=Profiles/someprofile\n\n[Profile1]\nPath=Profiles/otherprofile\n",
		},
		{
			name:    "malformed",
			content: "this is not a valid ini file\n===garbage===\n\x00\x01\x02\n",
		},
		{name: "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			iniPath := filepath.Join(dir, "profiles.ini")
			if err := os.WriteFile(iniPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write profiles.ini: %v", err)
			}
			want := tt.want
			if want != "" && !filepath.IsAbs(want) {
				want = filepath.Join(dir, filepath.FromSlash(want))
			}
			if got := parseProfilesIni(iniPath); got != want {
				t.Errorf("want %q, got %q", want, got)
			}
		})
	}
}

func TestParseProfilesIni_Missing(t *testing.T) {
	if got := parseProfilesIni("/nonexistent/path/profiles.ini"); got != "" {
		t.Errorf("missing profiles.ini: want empty string, got %q", got)
	}
}
