package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"
	"strings"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
	"github.com/viant/unanimate/motion/service"
)

//go:embed tools/stripAnimations.md
var descStripAnimations string

//go:embed tools/previewAnimations.md
var descPreviewAnimations string

func registerTools(base *protoserver.DefaultHandler, h *Handler) error {
	svc := h.service

	if err := protoserver.RegisterTool[*service.StripInput, *service.StripOutput](base.Registry, "stripAnimations", descStripAnimations, func(ctx context.Context, in *service.StripInput) (*schema.CallToolResult, *jsonrpc.Error) {
		return strip(ctx, svc, "stripAnimations", in)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*service.StripInput, *service.StripOutput](base.Registry, "previewAnimations", descPreviewAnimations, func(ctx context.Context, in *service.StripInput) (*schema.CallToolResult, *jsonrpc.Error) {
		if in != nil {
			in.DryRun = true
		}
		return strip(ctx, svc, "previewAnimations", in)
	}); err != nil {
		return err
	}
	return nil
}

func strip(ctx context.Context, svc *service.Service, tool string, in *service.StripInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if in == nil || strings.TrimSpace(in.URL) == "" {
		return buildErrorResult("url is required")
	}
	out, err := svc.Strip(ctx, in)
	if err != nil {
		log.Printf("%s: ns=%s url=%s error: %v", tool, namespace(ctx), in.URL, err)
		return buildErrorResult(err.Error())
	}
	log.Printf("%s: ns=%s url=%s edits=%d written=%v", tool, namespace(ctx), in.URL, out.Edits, out.Written)
	return buildSuccessResultOut(svc.UseTextField(), out)
}

func buildErrorResult(message string) (*schema.CallToolResult, *jsonrpc.Error) {
	return nil, jsonrpc.NewError(jsonrpc.InvalidParams, message, nil)
}

func buildSuccessResultOut(useText bool, payload any) (*schema.CallToolResult, *jsonrpc.Error) {
	if useText {
		b, _ := json.Marshal(payload)
		return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{{Type: "text", Text: string(b)}}}, nil
	}
	return &schema.CallToolResult{StructuredContent: map[string]any{"result": payload}}, nil
}
