package nativehost

import (
	"fmt"

	"github.com/urfave/cli"
)

func uninstall(c *cli.Context) error {
	browsers, err := selectBrowsers(c.String("browser"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	installer := newInstaller("", "", "")

	var removed, errors []string
	for _, b := range browsers {
		path, err := installer.Uninstall(b)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", b, err))
			continue
		}
		removed = append(removed, fmt.Sprintf("%s: %s", b, path))
	}
	if len(browsers) > 1 {
		unregisterEventSource()
	}

	if len(removed) > 0 {
		fmt.Println("Uninstalled manifests:")
		for _, m := range removed {
			fmt.Printf("  %s\n", m)
		}
	}
	if len(errors) > 0 {
		fmt.Println("\nErrors:")
		for _, e := range errors {
			fmt.Printf("  %s\n", e)
		}
		return cli.NewExitError("uninstall failed", 1)
	}
	return nil
}
