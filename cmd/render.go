package cmd

import (
	"fmt"
	"strconv"

	crumbs "github.com/crumbsapp/crumbs/common"
	"github.com/crumbsapp/crumbs/internal/browse"
	"github.com/crumbsapp/crumbs/internal/cleanup"
	"github.com/crumbsapp/crumbs/internal/rules"
	"github.com/goccy/go-json"
	"github.com/pterm/pterm"
)

func typeLabel(t cleanup.Type) string {
	return fmt.Sprintf("[%s] %s", cleanup.BadgeFor(t).Text, t)
}

func groupLabel(g browse.Group) string {
	label := fmt.Sprintf("%s %s", g.Domain, typeLabel(g.Type))
	if g.FirstPartyDomain != g.Domain {
		label += fmt.Sprintf(" (first party: %s)", g.FirstPartyDomain)
	}
	return label
}

func entryLabel(e browse.Entry) string {
	label := fmt.Sprintf("%s %s", e.Name, typeLabel(e.Type))
	if e.Encrypted {
		label += " (encrypted)"
	}
	return label
}

// renderGroupTree draws one branch per domain with its cookies as leaves.
func renderGroupTree(resp *crumbs.GroupsResponse) (string, error) {
	root := pterm.TreeNode{
		Text: fmt.Sprintf("%d cookies in %d domains of %d sites", resp.Total, len(resp.Groups), len(resp.FirstParties)),
	}
	for _, g := range resp.Groups {
		node := pterm.TreeNode{Text: groupLabel(g)}
		for _, e := range g.Cookies {
			node.Children = append(node.Children, pterm.TreeNode{Text: entryLabel(e)})
		}
		root.Children = append(root.Children, node)
	}
	return pterm.DefaultTree.WithRoot(root).Srender()
}

// renderGroupTable prints one row per cookie.
func renderGroupTable(resp *crumbs.GroupsResponse) (string, error) {
	data := pterm.TableData{{"Domain", "First Party", "Cookie", "Type", "Store"}}
	for _, g := range resp.Groups {
		for _, e := range g.Cookies {
			data = append(data, []string{g.Domain, g.FirstPartyDomain, e.Name, e.Type.String(), e.StoreID})
		}
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func renderRules(rs []rules.Rule) (string, error) {
	data := pterm.TableData{{"Expression", "Type", "Temporary"}}
	for _, r := range rs {
		data = append(data, []string{r.Expression, r.Type.String(), strconv.FormatBool(r.Temporary)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func renderOptions(opts rules.Options) (string, error) {
	data := pterm.TableData{
		{"Option", "Value"},
		{"fallback", opts.FallbackType.String()},
		{"whitelist-no-tld", strconv.FormatBool(opts.WhitelistNoTLD)},
		{"whitelist-file-system", strconv.FormatBool(opts.WhitelistFileSystem)},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printRendered(s string, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}
