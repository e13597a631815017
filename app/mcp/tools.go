package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askAgentTool runs one chat turn through the routing and synthesis pipeline.
var askAgentTool = mcp.NewTool("ask_agent",
	mcp.WithDescription("Ask the assistant a question. The query is routed to the general, clinical or food security agent and answered immediately, without the typing delay of the chat surface."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Free-text question for the assistant"),
	),
)

// generateDatasetTool fabricates a sample time series for an agent domain.
var generateDatasetTool = mcp.NewTool("generate_dataset",
	mcp.WithDescription("Generate a sample time-series dataset shaped for an agent domain and make it the active visualization dataset."),
	mcp.WithString("agent",
		mcp.Description("Agent domain to shape the data for (defaults to the current agent)"),
		mcp.Enum("general", "clinical", "food"),
	),
	mcp.WithString("topic",
		mcp.Description("Topic the dataset is about (defaults to \"general\")"),
	),
)

// listWidgetsTool returns all saved widgets.
var listWidgetsTool = mcp.NewTool("list_widgets",
	mcp.WithDescription("List all saved chart widgets, most recent first."),
)

// saveWidgetTool persists the active visualization dataset as a widget.
var saveWidgetTool = mcp.NewTool("save_widget",
	mcp.WithDescription("Save the currently visualized dataset as a named chart widget."),
	mcp.WithString("title",
		mcp.Required(),
		mcp.Description("Widget title, must not be empty"),
	),
	mcp.WithString("chart_type",
		mcp.Description("Chart type for the widget (default line)"),
		mcp.Enum("line", "bar", "pie"),
	),
)

// deleteWidgetTool removes a saved widget by id.
var deleteWidgetTool = mcp.NewTool("delete_widget",
	mcp.WithDescription("Delete a saved widget by id. Deleting an unknown id is a no-op."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("ID of the widget to delete"),
	),
)
