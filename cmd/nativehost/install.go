package nativehost

import (
	"fmt"
	"os"

	"github.com/crumbsapp/crumbs/internal/nativehost"
	"github.com/pterm/pterm"
	"github.com/urfave/cli"
)

var executable = os.Executable

func install(c *cli.Context) error {
	chromeID := c.String("chrome-extension-id")
	firefoxID := c.String("firefox-extension-id")
	if c.Bool("auto") {
		if !nativehost.HasOfficialExtensions() {
			fmt.Print(pterm.Info.Sprintln("No published extension IDs; skipping manifest installation"))
			return nil
		}
		chromeID, firefoxID = nativehost.OfficialChromeExtensionID, nativehost.OfficialFirefoxExtensionID
	}
	if chromeID == "" && firefoxID == "" {
		return cli.NewExitError("at least one extension ID is required (--chrome-extension-id or --firefox-extension-id)", 1)
	}
	browsers, err := selectBrowsers(c.String("browser"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	hostPath, err := executable()
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("failed to get executable path: %v", err), 1)
	}
	installer := newInstaller(hostPath, chromeID, firefoxID)

	var installed, errors []string
	for _, b := range browsers {
		// "all" covers only the browsers an ID was given for.
		if len(browsers) > 1 && ((b == nativehost.BrowserFirefox && firefoxID == "") ||
			(b != nativehost.BrowserFirefox && chromeID == "")) {
			continue
		}
		path, err := installer.Install(b)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", b, err))
			continue
		}
		installed = append(installed, fmt.Sprintf("%s: %s", b, path))
	}
	registerEventSource()

	if len(installed) > 0 {
		fmt.Println("Installed manifests:")
		for _, m := range installed {
			fmt.Printf("  %s\n", m)
		}
	}
	if len(errors) > 0 {
		fmt.Println("\nErrors:")
		for _, e := range errors {
			fmt.Printf("  %s\n", e)
		}
		if len(installed) == 0 {
			return cli.NewExitError("installation failed", 1)
		}
	}
	return nil
}
