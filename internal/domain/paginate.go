package domain

// DefaultPageSize is the fixed window used by the listing endpoint.
const DefaultPageSize = 12

// ToolPage is one pagination window over a filtered sequence.
type ToolPage struct {
	Tools   []Tool
	HasMore bool
	Total   int
}

// Paginate slices tools into the 1-indexed page of the given size,
// returning the half-open window [(page-1)*size, page*size). A page past
// the end yields an empty slice and HasMore=false rather than an error.
// Pages below 1 are clamped to 1; sizes below 1 fall back to
// DefaultPageSize.
func Paginate(tools []Tool, page, size int) ToolPage {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(tools)
	start := (page - 1) * size
	if start >= total {
		return ToolPage{Tools: []Tool{}, Total: total}
	}
	end := start + size
	if end > total {
		end = total
	}
	return ToolPage{
		Tools:   tools[start:end],
		HasMore: end < total,
		Total:   total,
	}
}
