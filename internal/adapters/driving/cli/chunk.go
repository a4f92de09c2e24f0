package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailvec/internal/postprocessors/chunker"
)

// defaultStandaloneChunkSize is the chunk size for the standalone chunk
// command, larger than the ingestion default.
const defaultStandaloneChunkSize = 500

var chunkSize int

var chunkCmd = &cobra.Command{
	Use:   "chunk [file]",
	Short: "Split a text file into word-bounded chunks",
	Long: `Splits text into consecutive windows of whole words and prints each
chunk. Reads from the file argument, or stdin when omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChunk,
}

func init() {
	chunkCmd.Flags().IntVar(&chunkSize, "size", defaultStandaloneChunkSize, "words per chunk")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	if chunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	separator := strings.Repeat("-", 40)
	n := 0
	for content := range chunker.Split(string(data), chunkSize) {
		cmd.Printf("Chunk %d:\n%s\n%s\n", n, content, separator)
		n++
	}

	cmd.Printf("%d chunks.\n", n)
	return nil
}
