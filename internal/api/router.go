package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/seezee/launcherhub/internal/auth"
)

// NewRouter creates and returns the main HTTP router.
func NewRouter(deps Deps, authSvc *auth.Service) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(middleware.CleanPath)

	h := &Handlers{Deps: deps}

	r.Group(func(r chi.Router) {
		if authSvc != nil {
			r.Use(authSvc.Middleware)
		}

		// Shared session
		r.Get("/api/info", h.getInfo)
		r.Get("/api/hub", h.getHub)
		r.Get("/api/subscribe", h.sseEvents)

		// Settings page
		r.Get("/api/connection", h.getConnection)
		r.Put("/api/connection", h.putConnection)
		r.Post("/api/connection/test", h.testConnection)
		r.Post("/api/connection/reset", h.resetConnection)
		r.Get("/api/discover", h.discover)
		r.Get("/api/settings/backups", h.getBackups)
		r.Post("/api/settings/backups", h.createBackup)

		// Library page
		r.Get("/api/library/folders", h.getFolders)
		r.Post("/api/library/folders", h.addFolder)
		r.Delete("/api/library/folders/{id}", h.removeFolder)
		r.Get("/api/library/games", h.getGames)
		r.Post("/api/library/launch", h.launch)
		r.Get("/api/library/favorites", h.getFavorites)
		r.Post("/api/library/favorites/{id}", h.toggleFavorite)
		r.Get("/api/library/recent", h.getRecent)
		r.Get("/api/fs/drives", h.getDrives)
		r.Get("/api/fs/list", h.listDirectory)
		r.Post("/api/fs/create", h.createDirectory)

		// Lighting page
		r.Get("/api/lighting/devices", h.getLightingDevices)
		r.Post("/api/lighting/apply", h.applyLighting)
		r.Get("/api/lighting/cooldown", h.getCooldown)
		r.Get("/api/lighting/log", h.getLightingLog)
		r.Post("/api/lighting/pick", h.pickColor)
		r.Get("/api/lighting/wheel.png", h.wheelPNG)
		r.Get("/api/lighting/theme", h.getAgentTheme)
		r.Post("/api/lighting/theme", h.setAgentTheme)
		r.Post("/api/lighting/sync", h.syncLighting)

		// Accent
		r.Get("/api/theme/accent", h.getAccent)
		r.Put("/api/theme/accent", h.putAccent)
		r.Post("/api/theme/reset", h.resetAccent)

		// Audio page
		r.Get("/api/audio/state", h.getAudioState)
		r.Get("/api/audio/subscribe", h.sseAudio)
		r.Post("/api/audio/volume", h.setVolume)
		r.Post("/api/audio/spotify/shuffle", h.spotifyShuffle)
		r.Post("/api/audio/spotify/repeat", h.spotifyRepeat)
		r.Post("/api/audio/spotify/seek", h.spotifySeek)
		r.Post("/api/audio/spotify/token", h.spotifyToken)
		r.Post("/api/audio/spotify/{action}", h.spotifyAction)

		// Dashboard
		r.Get("/api/monitor/devices", h.getMonitorDevices)
		r.Post("/api/command-center/github", h.githubRepos)
		r.Post("/api/command-center/vercel", h.vercelProjects)
	})

	return r
}

// corsMiddleware adds permissive CORS headers for local network access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Api-Key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
