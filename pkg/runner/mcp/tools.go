package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/nestlist/pkg/tree"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddItemTool(srv, svc)
	registerRemoveItemTool(srv, svc)
	registerMoveItemTool(srv, svc)
	registerReorderItemTool(srv, svc)
	registerStepItemTool(srv, svc)
	registerSetKindTool(srv, svc)
	registerRenameItemTool(srv, svc)
	registerFlattenTool(srv, svc)
}

func withDocument() mcp.ToolOption {
	return mcp.WithString("document",
		mcp.Description("Document to change. Defaults to the configured document."),
	)
}

func registerAddItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_item",
		mcp.WithDescription("Add an item as the last child of a parent, or at the root."),
		withDocument(),
		mcp.WithString("name",
			mcp.Description(`Item name. Empty names become "Item <id>".`),
		),
		mcp.WithNumber("parent_id",
			mcp.Description("Parent item id. Omit or pass -1 for the root. Leaves cannot be parents."),
		),
		mcp.WithString("kind",
			mcp.Description("folder (default) can hold children, leaf cannot."),
			mcp.Enum("folder", "leaf"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := struct {
			Document string `json:"document"`
			Name     string `json:"name"`
			ParentID *int   `json:"parent_id"`
			Kind     string `json:"kind"`
		}{}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		parentID := tree.NoParent
		if args.ParentID != nil {
			parentID = *args.ParentID
		}
		kind, err := tree.ParseKind(args.Kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		item, view, err := svc.AddItem(ctx, args.Document, args.Name, parentID, kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"item":     item,
			"document": view,
		})
	})
}

func registerRemoveItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_item",
		mcp.WithDescription("Remove an item together with all of its descendants."),
		withDocument(),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item id to remove."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		removed, view, err := svc.RemoveItem(ctx, request.GetString("document", ""), id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"removed":  removed,
			"document": view,
		})
	})
}

func registerMoveItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_item",
		mcp.WithDescription("Reparent an item as the last child of another item, or of the root. Moves that would create a cycle are refused."),
		withDocument(),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item id to move."),
		),
		mcp.WithNumber("parent_id",
			mcp.Required(),
			mcp.Description("New parent id, or -1 for the root."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		parentID, err := request.RequireInt("parent_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		view, err := svc.MoveItem(ctx, request.GetString("document", ""), id, parentID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerReorderItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reorder_item",
		mcp.WithDescription("Swap an item with its previous or next sibling."),
		withDocument(),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item id to reorder."),
		),
		mcp.WithString("direction",
			mcp.Required(),
			mcp.Description("Which sibling to swap with."),
			mcp.Enum("up", "down"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, err := request.RequireString("direction")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dir, err := tree.ParseDirection(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		view, err := svc.ReorderItem(ctx, request.GetString("document", ""), id, dir)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerStepItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"step_item",
		mcp.WithDescription("Step an item past its neighbour in display order. Without an action, lists the possible actions and changes nothing."),
		withDocument(),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item id to step."),
		),
		mcp.WithString("direction",
			mcp.Required(),
			mcp.Enum("up", "down"),
		),
		mcp.WithString("action",
			mcp.Description("skip swaps with the sibling, into enters the neighbouring folder, adjacent joins the neighbour's group, out leaves the parent."),
			mcp.Enum("skip", "into", "adjacent", "out"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, err := request.RequireString("direction")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dir, err := tree.ParseDirection(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		doc := request.GetString("document", "")

		rawAction := request.GetString("action", "")
		if rawAction == "" {
			moves, err := svc.Movements(ctx, doc, id, dir)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return toJSONResult(map[string]any{"movements": moves})
		}
		action, err := tree.ParseAction(rawAction)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		view, err := svc.StepItem(ctx, doc, id, dir, action)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerSetKindTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_kind",
		mcp.WithDescription("Turn an item into a folder or a leaf. A folder with children cannot become a leaf."),
		withDocument(),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item id to change."),
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Enum("folder", "leaf"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		kind, err := tree.ParseKind(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		view, err := svc.SetKind(ctx, request.GetString("document", ""), id, kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerRenameItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"rename_item",
		mcp.WithDescription("Change the name of an item."),
		withDocument(),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item id to rename."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("New name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		view, err := svc.RenameItem(ctx, request.GetString("document", ""), id, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerFlattenTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"flatten",
		mcp.WithDescription("List a document in display order with depths and the active index."),
		withDocument(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		view, err := svc.Flatten(ctx, request.GetString("document", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
