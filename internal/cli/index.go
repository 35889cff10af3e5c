package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/symgo/reader"
	"github.com/hupe1980/symgo/retrieval"
)

func init() {
	cmd := &cobra.Command{
		Use:   "index [source]",
		Short: "Index a document and search it",
		Long:  "Reads a local file or URL, chunks and embeds it into the named index, and optionally runs a search.",
		Args:  cobra.ExactArgs(1),
		Run:   runIndex,
	}

	cmd.Flags().StringP("name", "n", retrieval.DefaultIndex, "Index name")
	cmd.Flags().StringP("query", "q", "", "Search the index after building")
	cmd.Flags().IntP("top-k", "k", 5, "Number of results per search")
	cmd.Flags().Bool("overwrite", false, "Rebuild the index even if it exists")

	RootCmd.AddCommand(cmd)
}

func runIndex(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	query, _ := cmd.Flags().GetString("query")
	topK, _ := cmd.Flags().GetInt("top-k")
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	s, err := newSymGo()
	if err != nil {
		exitErr("initialize", err)
	}
	defer s.Close()

	text, err := reader.NewFileReader().Read(cmd.Context(), args[0])
	if err != nil {
		exitErr("read source", err)
	}

	retriever, err := retrieval.NewDocumentRetriever(cmd.Context(), s.Dispatcher(), text, func(o *retrieval.DocumentRetrieverOptions) {
		o.Index = name
		o.TopK = topK
		o.Overwrite = overwrite
	})
	if err != nil {
		exitErr("build index", err)
	}

	if query == "" {
		fmt.Printf("indexed '%s' into '%s'\n", args[0], name)
		return
	}

	result, err := retriever.Query(cmd.Context(), query)
	if err != nil {
		exitErr("search", err)
	}
	b, _ := json.MarshalIndent(result.Payload(), "", "  ")
	fmt.Println(string(b))
}
