package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"motion-dataset/services/ingest"
)

func newPortsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports and the ones usable by collect",
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := ingest.ListPorts()
			if err != nil {
				return fmt.Errorf("list ports: %w", err)
			}
			if len(ports) == 0 {
				fmt.Println("no serial ports found")
				return nil
			}
			usable := map[string]bool{}
			for _, p := range ingest.CandidatePorts(ports) {
				usable[p.Name] = true
			}
			for _, p := range ports {
				mark := " "
				if usable[p.Name] {
					mark = "*"
				}
				fmt.Printf("%s %-20s %s\n", mark, p.Name, p.Description())
			}
			return nil
		},
	}
}
