package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "query [question]",
		Short: "Ask a question against a context",
		Long:  "Dispatches a context/question pair to the reasoning backend and prints the reply.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runQuery,
	}

	cmd.Flags().StringP("context", "c", "", "Context text the question is asked against")

	RootCmd.AddCommand(cmd)
}

func runQuery(cmd *cobra.Command, args []string) {
	contextText, _ := cmd.Flags().GetString("context")
	question := strings.Join(args, " ")

	s, err := newSymGo()
	if err != nil {
		exitErr("initialize", err)
	}
	defer s.Close()

	result, err := s.Symbol(contextText).Query(cmd.Context(), question)
	if err != nil {
		exitErr("query", err)
	}
	fmt.Println(result.String())
}
