package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/staffroster/core/cmd/api/commands"
)

// @title StaffRoster API
// @version 1.0
// @description Employee records backed by a JSON snapshot file

// @host localhost:8000
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:   "staffroster",
		Short: "StaffRoster API Server",
		Long:  `StaffRoster keeps employee records in memory and mirrors every change to a JSON snapshot file.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSnapshotCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
