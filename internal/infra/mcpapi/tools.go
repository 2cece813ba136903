package mcpapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"hexageeky/internal/domain"
)

type searchToolsArgs struct {
	Query    string   `json:"query,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Page     int      `json:"page,omitempty"`
}

type searchToolsResult struct {
	Tools   []domain.Tool `json:"tools"`
	HasMore bool          `json:"hasMore"`
	Total   int           `json:"total"`
}

type getToolArgs struct {
	ID string `json:"id"`
}

type listCategoriesArgs struct{}

type categoryResult struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type listCategoriesResult struct {
	Categories []categoryResult `json:"categories"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_tools",
		Description: "Search the curated tool directory. All filters are optional: query is a case-insensitive substring match across title, description, category, and tags; category is an exact match; tags match tools carrying at least one of them. Results are paginated in windows of 12.",
		InputSchema: searchToolsSchema(),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchToolsArgs) (*mcp.CallToolResult, any, error) {
		result, err := s.searchTools(ctx, args)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(result), result, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_tool",
		Description: "Fetch one directory entry by its id, including its URL, category, tags, and feature list.",
		InputSchema: getToolSchema(),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getToolArgs) (*mcp.CallToolResult, any, error) {
		tool, err := s.getTool(ctx, args.ID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(tool), tool, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the distinct categories in the directory with the number of tools in each.",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listCategoriesArgs) (*mcp.CallToolResult, any, error) {
		result, err := s.listCategories(ctx)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(result), result, nil
	})
}

func (s *Server) searchTools(ctx context.Context, args searchToolsArgs) (searchToolsResult, error) {
	state, err := s.provider.Snapshot(ctx)
	if err != nil {
		return searchToolsResult{}, err
	}

	matched := domain.FilterTools(state.Catalog.Tools(), domain.FilterCriteria{
		Query:    args.Query,
		Category: args.Category,
		Tags:     args.Tags,
	})
	page := domain.Paginate(matched, args.Page, domain.DefaultPageSize)
	return searchToolsResult{
		Tools:   page.Tools,
		HasMore: page.HasMore,
		Total:   page.Total,
	}, nil
}

func (s *Server) getTool(ctx context.Context, id string) (domain.Tool, error) {
	state, err := s.provider.Snapshot(ctx)
	if err != nil {
		return domain.Tool{}, err
	}
	tool, ok := state.Catalog.Get(id)
	if !ok {
		return domain.Tool{}, domain.E(domain.CodeNotFound, "mcpapi.getTool",
			fmt.Sprintf("tool %q not found", id), domain.ErrToolNotFound)
	}
	return tool, nil
}

func (s *Server) listCategories(ctx context.Context) (listCategoriesResult, error) {
	state, err := s.provider.Snapshot(ctx)
	if err != nil {
		return listCategoriesResult{}, err
	}

	counts := state.Catalog.CategoryCounts()
	result := listCategoriesResult{Categories: make([]categoryResult, 0, len(counts))}
	for _, name := range state.Catalog.Categories() {
		result.Categories = append(result.Categories, categoryResult{Name: name, Count: counts[name]})
	}
	return result, nil
}

func searchToolsSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Substring matched case-insensitively against title, description, category, and tags",
			},
			"category": {
				Type:        "string",
				Description: "Exact category name, e.g. Government or Social Media",
			},
			"tags": {
				Type:        "array",
				Items:       &jsonschema.Schema{Type: "string"},
				Description: "Tools carrying at least one of these tags match",
			},
			"page": {
				Type:        "integer",
				Description: "1-indexed page over the filtered set; windows of 12",
			},
		},
	}
}

func getToolSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id": {
				Type:        "string",
				Description: "Directory entry id",
			},
		},
		Required: []string{"id"},
	}
}

func jsonResult(payload any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorResult(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
