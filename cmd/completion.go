package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jole/ivsb/internal/query"
)

func init() {
	// Register custom completions after all commands are initialized
	cobra.OnInitialize(registerCompletions)
}

func registerCompletions() {
	// --scope flag
	rootCmd.RegisterFlagCompletionFunc("scope", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"both\tMaster and intensive schedules",
			"ordinary\tMaster schedule only",
			"intensive\tIntensive schedule only",
		}, cobra.ShellCompDirectiveNoFileComp
	})

	// --config flag: complete with json5 files
	rootCmd.RegisterFlagCompletionFunc("config", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json5", "json"}, cobra.ShellCompDirectiveFilterFileExt
	})

	// filter expressions: complete field prefixes
	rootCmd.RegisterFlagCompletionFunc("filter", completeFilter)
	listCmd.RegisterFlagCompletionFunc("query", completeFilter)
	exportCmd.RegisterFlagCompletionFunc("query", completeFilter)

	// --db flag: complete with .db files
	exportCmd.RegisterFlagCompletionFunc("db", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"db"}, cobra.ShellCompDirectiveFilterFileExt
	})
}

// completeFilter offers "field:" prefixes for the clause being typed.
func completeFilter(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, current := "", toComplete
	if i := strings.LastIndex(toComplete, ";"); i >= 0 {
		done, current = toComplete[:i+1], strings.TrimLeft(toComplete[i+1:], " ")
	}
	if strings.Contains(current, ":") {
		return nil, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}

	var completions []string
	for _, name := range query.FieldNames() {
		if strings.HasPrefix(name, current) {
			completions = append(completions, done+name+":")
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
