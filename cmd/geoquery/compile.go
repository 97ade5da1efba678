package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hdbmap/geoquery/v1/config"
	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/resale"
)

// compiledQuery is the output of compile for a plain read.
type compiledQuery struct {
	Collection string                    `json:"collection"`
	Predicate  filters.CompiledPredicate `json:"predicate"`
	Limit      *int                      `json:"limit,omitempty"`
	Sort       string                    `json:"sort,omitempty"`
}

// compiledAggregation is the output of compile --aggregate.
type compiledAggregation struct {
	Collection string           `json:"collection"`
	Pipeline   filters.Pipeline `json:"pipeline"`
}

func newCompileCmd(configPath *string) *cobra.Command {
	var collection string
	var aggregate bool
	var policy string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a FilterSpec read from stdin and print the result",
		Long: `Compile reads a FilterSpec such as

  {"ranges": {"psfRange": {"gte": 400, "lte": 600}}, "categories": {"towns": ["BISHAN"]}}

from stdin and prints the compiled predicate, or with --aggregate the average
price pipeline, without touching a database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			if policy == "" {
				policy = cfg.Resale.UnknownFields
			}
			unknown, err := filters.ParseUnknownFieldPolicy(policy)
			if err != nil {
				return err
			}

			var schema filters.Schema
			var name string
			switch collection {
			case "records":
				schema, name = resale.RecordsSchema(unknown), cfg.Resale.RecordsCollection
			case "listings":
				schema, name = resale.ListingsSchema(unknown), cfg.Resale.ListingsCollection
			default:
				return fmt.Errorf("unknown collection %q, want records or listings", collection)
			}

			dec := json.NewDecoder(cmd.InOrStdin())
			dec.UseNumber()
			dec.DisallowUnknownFields()
			var spec filters.FilterSpec
			if err := dec.Decode(&spec); err != nil {
				return fmt.Errorf("decode FilterSpec: %w", err)
			}

			var out interface{}
			if aggregate {
				pipeline, err := resale.AveragePricePipeline(spec, schema)
				if err != nil {
					return err
				}
				out = compiledAggregation{Collection: name, Pipeline: pipeline}
			} else {
				query, err := filters.AssembleQuery(spec, schema)
				if err != nil {
					return err
				}
				compiled := compiledQuery{Collection: name, Predicate: query.Predicate, Limit: query.Limit}
				if query.Limit != nil {
					compiled.Sort = schema.RecencyField
				}
				out = compiled
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "records", "records or listings")
	cmd.Flags().BoolVar(&aggregate, "aggregate", false, "compile the average price pipeline instead of a read")
	cmd.Flags().StringVar(&policy, "unknown-fields", "", "reject or pass; defaults to the configured policy")
	return cmd
}
