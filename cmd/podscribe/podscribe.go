// Copyright (C) 2026 The Podscribe Authors.
//
// This file is part of Podscribe.
//
// Podscribe is free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Podscribe is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License for
// more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Podscribe.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/defsub/podscribe"
	"github.com/defsub/podscribe/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           podscribe.AppName,
	Short:         "Podscribe transcribes podcast feeds",
	Long:          `Download, transcribe and index every episode of a podcast feed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configFile string
var configPath string
var configName string

func getConfig() (*config.Config, error) {
	if configPath == "" {
		configPath = os.Getenv("PODSCRIBE_HOME")
	}
	if configName == "" {
		configName = os.Getenv("PODSCRIBE_CONFIG")
	}
	if configFile != "" {
		config.SetConfigFile(configFile)
	} else {
		if configPath == "" {
			configPath = "."
		}
		if configName == "" {
			configName = podscribe.AppName
		}
		config.AddConfigPath(configPath)
		config.SetConfigName(configName)
	}
	return config.GetConfig()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
