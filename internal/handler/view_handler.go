package handler

import (
	"net/http"

	"chatfront/internal/app/devproxy"
	"chatfront/internal/app/views"
	"chatfront/internal/pkg/resp"
)

// ViewsResponse describes the front-end to the browser and to tooling.
type ViewsResponse struct {
	Routes []views.Route     `json:"routes"`
	Proxy  []devproxy.Rule   `json:"proxy"`
	Config map[string]string `json:"config"`
}

// HandleListViews returns the view table, the active proxy rules and the
// VUE_APP_* settings.
func HandleListViews(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ViewsResponse{
			Routes: views.Routes,
			Proxy:  []devproxy.Rule{},
			Config: deps.Config.Frontend,
		}

		if deps.Proxy != nil {
			data.Proxy = deps.Proxy.Rules()
		}
		if data.Config == nil {
			data.Config = map[string]string{}
		}

		resp.RespondSuccess(w, r, data)
	}
}
