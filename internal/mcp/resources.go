// ABOUTME: MCP resource implementations for the swim roster.
// ABOUTME: Provides swim://roster, swim://summary and swim://metrics resources.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/harperreed/swim/internal/metrics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	rosterURI  = "swim://roster"
	summaryURI = "swim://summary"
	metricsURI = "swim://metrics"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         rosterURI,
		Name:        "Swim Roster",
		Description: "Every swimmer with their races",
		MIMEType:    "application/json",
	}, s.handleRosterResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Roster Summary",
		Description: "Swimmer and race counts by status, level and grading",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         metricsURI,
		Name:        "Roster Metrics",
		Description: "Roster gauges in Prometheus text format",
		MIMEType:    "text/plain",
	}, s.handleMetricsResource)
}

// Resource handlers

func (s *Server) handleRosterResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	result := toSwimmerList(s.roster.Swimmers())
	s.mu.Unlock()

	return jsonResource(rosterURI, result)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byLevel := make(map[string]int)
	for _, sw := range s.roster.Swimmers() {
		key := strconv.Itoa(sw.Level)
		if _, seen := byLevel[key]; !seen {
			byLevel[key] = s.roster.NumberOfSwimmersByLevel(sw.Level)
		}
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"swimmers": map[string]int{
			"total":    s.roster.NumberOfSwimmers(),
			"active":   s.roster.NumberOfActiveSwimmers(),
			"archived": s.roster.NumberOfArchivedSwimmers(),
		},
		"swimmers_by_level": byLevel,
		"races": map[string]int{
			"graded":   s.roster.NumberOfGradedRaces(),
			"ungraded": s.roster.NumberOfUngradedRaces(),
		},
		"next_id": s.roster.NextID(),
	}

	return jsonResource(summaryURI, result)
}

func (s *Server) handleMetricsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := metrics.WriteText(&buf, s.roster); err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      metricsURI,
			MIMEType: "text/plain",
			Text:     buf.String(),
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
