package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"jup-pnl-sol/internal/svc"
)

func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	server.AddRoutes([]rest.Route{
		{
			Method:  http.MethodGet,
			Path:    "/",
			Handler: HelloHandler(),
		},
		{
			Method:  http.MethodGet,
			Path:    "/pnl",
			Handler: PnlHandler(svcCtx.PnlService),
		},
	})
}
