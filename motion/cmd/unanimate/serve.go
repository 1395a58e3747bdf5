package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/viant/mcp-protocol/authorization"
	oauthmeta "github.com/viant/mcp-protocol/oauth2/meta"
	"github.com/viant/mcp-protocol/schema"
	mcpsrv "github.com/viant/mcp/server"
	serverauth "github.com/viant/mcp/server/auth"
	"github.com/viant/scy"
	"github.com/viant/scy/auth/flow"
	"github.com/viant/scy/cred"
	_ "github.com/viant/scy/kms/blowfish"

	motionmcp "github.com/viant/unanimate/motion/mcp"
	"github.com/viant/unanimate/motion/service"
)

// serve exposes the strip tools over streamable HTTP until the listener fails.
func serve(ctx context.Context, opts *Options) error {
	svc := service.NewService(&service.Config{BaseURL: opts.BaseURL, DiffBytes: opts.DiffBytes, UseData: opts.UseData})
	options := []mcpsrv.Option{
		mcpsrv.WithImplementation(schema.Implementation{Name: "unanimate", Version: "0.1.0"}),
		mcpsrv.WithNewHandler(motionmcp.NewHandler(svc)),
		mcpsrv.WithEndpointAddress(opts.HTTPAddr),
		mcpsrv.WithRootRedirect(true),
		mcpsrv.WithStreamableURI("/mcp"),
	}
	if v := strings.TrimSpace(opts.Oauth2Config); v != "" {
		authOptions, err := oauth2Options(ctx, v, opts.UseIdToken)
		if err != nil {
			return err
		}
		options = append(options, authOptions...)
	}

	server, err := mcpsrv.New(options...)
	if err != nil {
		return fmt.Errorf("failed to create mcp server: %w", err)
	}
	server.UseStreamableHTTP(true)
	log.Printf("unanimate: serving MCP on %s/mcp", opts.HTTPAddr)
	return server.HTTP(ctx, opts.HTTPAddr).ListenAndServe()
}

// oauth2Options protects /mcp with the OAuth2 client loaded from a scy resource.
func oauth2Options(ctx context.Context, resource string, useIdToken bool) ([]mcpsrv.Option, error) {
	res := scy.EncodedResource(resource).Decode(ctx, cred.Oauth2Config{})
	sec, err := scy.New().Load(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("failed to load oauth2config: %w", err)
	}
	oauth2Config, ok := sec.Target.(*cred.Oauth2Config)
	if !ok {
		return nil, fmt.Errorf("invalid oauth2config secret type: %T", sec.Target)
	}
	authPolicy := &authorization.Policy{
		Global: &authorization.Authorization{UseIdToken: useIdToken, ProtectedResourceMetadata: &oauthmeta.ProtectedResourceMetadata{
			AuthorizationServers: []string{oauth2Config.Config.Endpoint.AuthURL},
		}},
		ExcludeURI: "/sse",
	}
	bff := &serverauth.BackendForFrontend{Client: &oauth2Config.Config, AuthorizationExchangeHeader: flow.AuthorizationExchangeHeader}
	authSvc, err := serverauth.New(&serverauth.Config{BackendForFrontend: bff, Policy: authPolicy})
	if err != nil {
		return nil, fmt.Errorf("failed to init auth service: %w", err)
	}
	return []mcpsrv.Option{
		mcpsrv.WithAuthorizer(authSvc.Middleware),
		mcpsrv.WithProtectedResourcesHandler(authSvc.ProtectedResourcesHandler),
	}, nil
}
