package httpadapter

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	corsAllowMethods = "GET,POST,OPTIONS"
	corsAllowHeaders = "Content-Type"
	corsAnyOrigin    = "*"
)

// applyCORSHeaders lets the presentation layer, served from its own origin,
// dispatch actions and read state.
func applyCORSHeaders(ctx *app.RequestContext, origin string) {
	if origin == "" {
		origin = corsAnyOrigin
	}
	ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", "600")
	if origin != corsAnyOrigin {
		ctx.Response.Header.Set("Vary", "Origin")
	}
}

func corsMiddleware(origin string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		applyCORSHeaders(ctx, origin)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
