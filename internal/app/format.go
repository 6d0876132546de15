package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/chriscorrea/winnow/internal/dedup"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// jsonCluster is the JSON shape of a single cluster
type jsonCluster struct {
	Representative string   `json:"representative"`
	Members        []string `json:"members"`
	Size           int      `json:"size"`
}

// jsonOutput is the top-level JSON document
type jsonOutput struct {
	Uniques  []string      `json:"uniques"`
	Clusters []jsonCluster `json:"clusters,omitempty"`
	Stats    dedup.Stats   `json:"stats"`
}

// Format renders a deduplication result in the requested format.
// Text and JSON list only representatives unless showClusters is set;
// the table always shows members.
func Format(result *dedup.Result, format OutputFormat, showClusters bool) (string, error) {
	switch format {
	case Text:
		return formatText(result, showClusters), nil
	case JSON:
		return formatJSON(result, showClusters)
	case Table:
		return formatTable(result), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatText writes one representative per line, or "rep: member member" per cluster.
func formatText(result *dedup.Result, showClusters bool) string {
	var sb strings.Builder
	for _, c := range result.Clusters {
		sb.WriteString(c.Representative)
		if showClusters {
			sb.WriteString(":")
			for _, m := range c.Members {
				sb.WriteString(" ")
				sb.WriteString(m)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatJSON(result *dedup.Result, showClusters bool) (string, error) {
	out := jsonOutput{
		Uniques: result.Uniques(),
		Stats:   result.Stats,
	}
	if showClusters {
		out.Clusters = make([]jsonCluster, 0, len(result.Clusters))
		for _, c := range result.Clusters {
			out.Clusters = append(out.Clusters, jsonCluster{
				Representative: c.Representative,
				Members:        c.Members,
				Size:           c.Size(),
			})
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func formatTable(result *dedup.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Representative", "Size", "Members"})

	for _, c := range result.Clusters {
		tw.AppendRow(table.Row{c.Representative, strconv.Itoa(c.Size()), strings.Join(c.Members, ", ")})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render() + "\n"
}
