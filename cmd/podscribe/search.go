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
	"fmt"
	"strings"

	"github.com/defsub/podscribe/podcast"
	"github.com/defsub/podscribe/store"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "search indexed transcripts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return search(strings.Join(args, " "))
	},
}

var searchLimit int
var searchCollection string

func search(q string) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	if searchCollection != "" {
		cfg.Store.Collection = searchCollection
	}
	limit := cfg.Search.Limit
	if searchLimit > 0 {
		limit = searchLimit
	}

	s := store.NewSearch(cfg)
	if err := s.Open(cfg.Store.Collection); err != nil {
		return err
	}
	defer s.Close()

	hits, err := s.Search(q, limit)
	if err != nil {
		return err
	}
	total, err := s.Count()
	if err != nil {
		return err
	}
	fmt.Printf("%d hits in %d documents\n", len(hits), total)
	for _, hit := range hits {
		fmt.Printf("%.3f %s %s %s\n", hit.Score,
			field(hit.Fields, podcast.FieldDate),
			field(hit.Fields, podcast.FieldFilename),
			field(hit.Fields, podcast.FieldTitle))
	}
	return nil
}

func field(fields map[string]interface{}, name string) string {
	if v, ok := fields[name]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return "-"
}

func init() {
	searchCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "max results")
	searchCmd.Flags().StringVar(&searchCollection, "collection", "", "index collection")
	rootCmd.AddCommand(searchCmd)
}
