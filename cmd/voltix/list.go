package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-voltix/usb"
)

var (
	cmdList = &cobra.Command{
		Use:   "list",
		Short: "List connected Voltix devices",
		Long:  ``,
		RunE:  runList,
	}
)

func init() {
	rootCmd.AddCommand(cmdList)
}

func runList(ccmd *cobra.Command, _ []string) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}
	cfg, err := usbConfig(schema.USB, nil)
	if err != nil {
		return err
	}

	infos, err := usb.Enumerate(ccmd.Context(), cfg)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(ccmd.OutOrStdout(), "no devices found")
		return nil
	}
	for _, i := range infos {
		fmt.Fprintln(ccmd.OutOrStdout(), i)
	}
	return nil
}
