package nativehost

import (
	"fmt"

	"github.com/crumbsapp/crumbs/internal/nativehost"
	"github.com/pterm/pterm"
	"github.com/urfave/cli"
)

func status(c *cli.Context) error {
	installer := newInstaller("", "", "")

	fmt.Println("Native Messaging Host Status")
	fmt.Println("============================")
	fmt.Printf("Host Name: %s\n\n", nativehost.HostName)

	data := pterm.TableData{{"Browser", "Status", "Path"}}
	for _, b := range nativehost.SupportedBrowsers() {
		path, ok := installer.Installed(b)
		state := "Not installed"
		if ok {
			state = "Installed"
		}
		data = append(data, []string{string(b), state, path})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Println(s)
	return nil
}
