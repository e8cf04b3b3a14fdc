package cli

import (
	"fmt"

	"cert-quiz-service/internal/bank"
	"cert-quiz-service/internal/domain"
	"github.com/spf13/cobra"
)

// NewCheckCmd validates a question bank file without starting the server.
// A malformed bank fails the command with the offending line number so
// content errors are caught before any participant sees a broken quiz.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <bank.jsonl>",
		Short: "Validate a JSONL question bank file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := bank.ParseFile(args[0])
			if err != nil {
				return err
			}
			critical := 0
			for _, q := range questions {
				if q.Importance == domain.ImportanceCritical {
					critical++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions (%d critical, %d normal)\n",
				args[0], len(questions), critical, len(questions)-critical)
			return nil
		},
	}
}
