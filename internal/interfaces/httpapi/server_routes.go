package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerNightRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /v1/nights/today", handler.GetOrCreateTonight)
	mux.HandleFunc("GET /v1/nights/today", handler.GetOrCreateTonight)
	mux.HandleFunc("GET /v1/nights/{nightID}", handler.GetNight)
	mux.HandleFunc("GET /v1/nights/{nightID}/queue", handler.GetQueue)

	mux.Handle("POST /v1/nights/{nightID}/checkins", RequireAuth(verifier, http.HandlerFunc(handler.CheckIn)))
	mux.Handle("DELETE /v1/nights/{nightID}/checkins/me", RequireAuth(verifier, http.HandlerFunc(handler.CheckOut)))

	mux.Handle("POST /v1/nights/{nightID}/partner-requests", RequireAuth(verifier, http.HandlerFunc(handler.SendPartnerRequest)))
	mux.Handle("POST /v1/nights/{nightID}/partner-requests/{requestID}/accept", RequireAuth(verifier, http.HandlerFunc(handler.AcceptPartnerRequest)))
	mux.Handle("POST /v1/nights/{nightID}/partner-requests/{requestID}/reject", RequireAuth(verifier, http.HandlerFunc(handler.RejectPartnerRequest)))
	mux.Handle("DELETE /v1/nights/{nightID}/partnerships/me", RequireAuth(verifier, http.HandlerFunc(handler.RemoveMyPartnership)))

	mux.Handle("POST /v1/nights/{nightID}/matches/assign", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatchesNow)))
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.Handle("POST /v1/matches/{matchID}/score", RequireAuth(verifier, http.HandlerFunc(handler.SubmitScore)))
	mux.Handle("POST /v1/matches/{matchID}/score/confirm", RequireAuth(verifier, http.HandlerFunc(handler.ConfirmScore)))
	mux.Handle("POST /v1/matches/{matchID}/score/dispute", RequireAuth(verifier, http.HandlerFunc(handler.DisputeScore)))
	mux.Handle("DELETE /v1/matches/{matchID}/score", RequireAuth(verifier, http.HandlerFunc(handler.CancelScoreSubmission)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/admin/matches/{matchID}/score", RequireAuth(verifier, http.HandlerFunc(handler.OverrideScore)))
	mux.Handle("DELETE /v1/admin/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.CancelMatch)))
	mux.Handle("POST /v1/admin/nights/{nightID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.AssignMatch)))
	mux.Handle("POST /v1/admin/nights/{nightID}/checkins", RequireAuth(verifier, http.HandlerFunc(handler.AdminCheckIn)))
	mux.Handle("DELETE /v1/admin/nights/{nightID}/checkins/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.AdminCheckOut)))
	mux.Handle("POST /v1/admin/nights/{nightID}/partnerships", RequireAuth(verifier, http.HandlerFunc(handler.AdminCreatePartnership)))
	mux.Handle("DELETE /v1/admin/nights/{nightID}/partnerships/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.AdminRemovePartnership)))
	mux.Handle("PUT /v1/admin/nights/{nightID}/courts", RequireAuth(verifier, http.HandlerFunc(handler.UpdateCourts)))
	mux.Handle("PUT /v1/admin/nights/{nightID}/auto-assign", RequireAuth(verifier, http.HandlerFunc(handler.SetAutoAssignment)))
	mux.Handle("POST /v1/admin/nights/{nightID}/complete", RequireAuth(verifier, http.HandlerFunc(handler.CompleteNight)))
}
