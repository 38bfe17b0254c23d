package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all schedules and tasks",
		Long: `Erase every stored week and the task registry. The default tasks are
reseeded afterward. This cannot be undone.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !force && !promptYesNo("Erase ALL weeks and tasks?") {
				fmt.Println("Aborted.")
				return nil
			}
			if err := a.store.Reset(); err != nil {
				return fmt.Errorf("resetting data: %w", err)
			}
			fmt.Println("All data erased.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return cmd
}

// promptYesNo asks a yes/no question on stdin, defaulting to no.
func promptYesNo(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
