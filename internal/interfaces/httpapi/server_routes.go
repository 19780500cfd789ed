package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/owners/{ownerID}/team", handler.GetTeamByOwner)
	mux.HandleFunc("POST /v1/teams/{teamID}/squad", handler.BuildSquad)
	mux.HandleFunc("GET /v1/teams/{teamID}/squad", handler.GetSquad)

	mux.HandleFunc("PUT /v1/teams/{teamID}/gameweeks/{gameWeekID}/lineup", handler.SetLineup)
	mux.HandleFunc("GET /v1/teams/{teamID}/gameweeks/{gameWeekID}/lineup", handler.GetLineup)

	mux.HandleFunc("POST /v1/teams/{teamID}/transfers", handler.MakeTransfer)
	mux.HandleFunc("GET /v1/teams/{teamID}/transfers", handler.ListTransfers)

	mux.HandleFunc("POST /v1/gameweeks", handler.CreateGameWeek)
	mux.HandleFunc("GET /v1/gameweeks", handler.ListGameWeeks)
	mux.HandleFunc("GET /v1/gameweeks/{gameWeekID}", handler.GetGameWeek)
	mux.HandleFunc("POST /v1/gameweeks/{gameWeekID}/fixtures", handler.AddFixture)
	mux.HandleFunc("GET /v1/gameweeks/{gameWeekID}/fixtures", handler.ListFixtures)
	mux.HandleFunc("POST /v1/gameweeks/{gameWeekID}/points", handler.CalculateGameWeekPoints)

	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)

	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/close-gameweeks", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunCloseGameWeeksJob)))
	mux.Handle("POST /v1/internal/jobs/recalculate-prices", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecalculatePricesJob)))
	mux.Handle("POST /v1/internal/ingestion/box-scores", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestBoxScore)))
}
