package main

import (
	"fmt"
	"os"
)

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	if c.Init {
		if _, err := os.Stat(deps.ConfigPath); err == nil {
			return fmt.Errorf("config file %q already exists", deps.ConfigPath)
		}
		if err := deps.Config.Save(deps.ConfigPath); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", deps.ConfigPath)
		return nil
	}

	data, err := deps.Config.Marshal()
	if err != nil {
		return err
	}
	_, err = deps.Stdout.Write(data)
	return err
}
