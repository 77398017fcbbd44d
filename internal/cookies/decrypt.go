package cookies

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/samber/lo"
	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/pbkdf2"
)

// Decrypter turns an encrypted Chromium cookie value into plain text.
type Decrypter interface {
	Decrypt(hostKey string, encrypted []byte) (string, error)
}

var (
	// ErrUnsupportedEncryption is returned for value formats this platform cannot decrypt.
	ErrUnsupportedEncryption = errors.New("unsupported cookie encryption")
	// ErrDecrypt is returned when a value cannot be decrypted with the derived key.
	ErrDecrypt = errors.New("cannot decrypt cookie value")
)

const (
	chromeSalt       = "saltysalt"
	chromeKeyLength  = 16
	linuxPassword    = "peanuts"
	linuxIterations  = 1
	darwinIterations = 1003
)

var keyringGet = keyring.Get

// safeStorage names the OS keyring entry holding a browser's cookie password.
type safeStorage struct {
	Service string
	Account string
}

var safeStorages = map[string]safeStorage{
	"Chrome":   {"Chrome Safe Storage", "Chrome"},
	"Chromium": {"Chromium Safe Storage", "Chromium"},
	"Edge":     {"Microsoft Edge Safe Storage", "Microsoft Edge"},
	"Brave":    {"Brave Safe Storage", "Brave"},
}

// ChromeDecrypter decrypts v10/v11 values written by Chromium-family browsers
// on Linux and macOS. Keys are derived lazily and cached, and so are
// failures: the OS keyring is asked at most once per decrypter.
type ChromeDecrypter struct {
	Browser string
	goos    string

	mu      sync.Mutex
	keys    map[string][]byte
	keyErrs map[string]error
	// password is the keyring lookup result, shared by v10 and v11 on macOS.
	password    *string
	passwordErr error
}

// NewChromeDecrypter returns a decrypter for the named browser
// ("Chrome", "Chromium", "Edge" or "Brave").
func NewChromeDecrypter(browser string) *ChromeDecrypter {
	return &ChromeDecrypter{
		Browser: browser,
		goos:    runtime.GOOS,
		keys:    map[string][]byte{},
		keyErrs: map[string]error{},
	}
}

// Decrypt decrypts an encrypted_value column.
func (d *ChromeDecrypter) Decrypt(hostKey string, encrypted []byte) (string, error) {
	if len(encrypted) < 3 {
		return "", ErrDecrypt
	}
	version := string(encrypted[:3])
	if version != "v10" && version != "v11" {
		return "", fmt.Errorf("%w: prefix %q", ErrUnsupportedEncryption, version)
	}
	key, err := d.key(version)
	if err != nil {
		return "", err
	}
	plain, err := decryptCBC(key, encrypted[3:])
	if err != nil {
		return "", err
	}
	// Newer databases prefix the value with SHA-256(host_key).
	if len(plain) >= sha256.Size {
		sum := sha256.Sum256([]byte(hostKey))
		if bytes.Equal(plain[:sha256.Size], sum[:]) {
			plain = plain[sha256.Size:]
		}
	}
	return string(plain), nil
}

func (d *ChromeDecrypter) key(version string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if k, ok := d.keys[version]; ok {
		return k, nil
	}
	if err, ok := d.keyErrs[version]; ok {
		return nil, err
	}
	k, err := d.deriveKey(version)
	if err != nil {
		d.keyErrs[version] = err
		return nil, err
	}
	d.keys[version] = k
	return k, nil
}

func (d *ChromeDecrypter) deriveKey(version string) ([]byte, error) {
	var (
		password   string
		iterations int
	)
	switch {
	case d.goos == "linux" && version == "v10":
		password, iterations = linuxPassword, linuxIterations
	case d.goos == "linux" && version == "v11":
		p, err := d.keyringPassword()
		if err != nil {
			return nil, err
		}
		password, iterations = p, linuxIterations
	case d.goos == "darwin":
		p, err := d.keyringPassword()
		if err != nil {
			return nil, err
		}
		password, iterations = p, darwinIterations
	default:
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedEncryption, version, d.goos)
	}

	return pbkdf2.Key([]byte(password), []byte(chromeSalt), iterations, chromeKeyLength, sha1.New), nil
}

// keyringPassword must be called with d.mu held.
func (d *ChromeDecrypter) keyringPassword() (string, error) {
	if d.password != nil || d.passwordErr != nil {
		return lo.FromPtr(d.password), d.passwordErr
	}
	ss, ok := safeStorages[d.Browser]
	if !ok {
		ss = safeStorages["Chrome"]
	}
	p, err := keyringGet(ss.Service, ss.Account)
	if err != nil {
		d.passwordErr = fmt.Errorf("%w: keyring lookup for %s: %v", ErrDecrypt, ss.Service, err)
		return "", d.passwordErr
	}
	d.password = &p
	return p, nil
}

func decryptCBC(key, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrDecrypt
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	iv := bytes.Repeat([]byte{' '}, aes.BlockSize)
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)

	pad := int(out[len(out)-1])
	if pad == 0 || pad > aes.BlockSize || pad > len(out) {
		return nil, ErrDecrypt
	}
	for _, b := range out[len(out)-pad:] {
		if int(b) != pad {
			return nil, ErrDecrypt
		}
	}
	return out[:len(out)-pad], nil
}
