package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	RouteShares        = RouteApiV1 + "/shares"
	RouteShareUpload   = RouteShares + "/upload"
	RouteShare         = RouteShares + "/:share_id"
	RouteShareDownload = RouteShare + "/download"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
