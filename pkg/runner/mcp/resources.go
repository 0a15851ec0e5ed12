package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerDocumentsResource(srv, svc)
	registerDocumentTemplate(srv, svc)
}

func registerDocumentsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"nestlist://documents",
		"Documents",
		mcp.WithResourceDescription("All saved nestlist documents with item counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListDocuments(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"documents": summaries,
			"count":     len(summaries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDocumentTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"nestlist://documents/{name}",
		"Document Items",
		mcp.WithTemplateDescription("The flattened, depth annotated items of one document."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name := templateArgument(request.Params.Arguments["name"])
		if name == "" {
			return nil, fmt.Errorf("document name is required")
		}

		view, err := svc.Flatten(ctx, name)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

// templateArgument unwraps a URI template variable, which the server may
// hand over as a string or a one element list.
func templateArgument(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
