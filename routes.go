package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"lavanderia/admin"
	"lavanderia/auth"
	"lavanderia/boleta"
	"lavanderia/config"
	"lavanderia/render"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, cfg config.Config, sessions *auth.Sessions, pages *render.Renderer) {
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		claims := sessions.Read(r)
		pages.Show(w, r, "index.html", claims.User, claims.Admin, nil)
	})

	mux.HandleFunc("/login", auth.LoginHandler(dbConn, sessions, pages))
	mux.HandleFunc("/logout", auth.LogoutHandler(sessions))
	mux.HandleFunc("/admin/login", auth.AdminLoginHandler(dbConn, sessions, pages))
	mux.HandleFunc("/admin/logout", auth.AdminLogoutHandler(sessions))
	mux.HandleFunc("/admin", sessions.RequireAdmin(admin.PanelHandler(dbConn, sessions, pages)))
	mux.HandleFunc("/admin/reset-password-safely", admin.ResetPasswordHandler(dbConn))

	mux.HandleFunc("/boletas", sessions.RequireLogin(boleta.ListBoletasHandler(dbConn, sessions, pages)))
	mux.HandleFunc("/export.csv", sessions.RequireLogin(boleta.ExportCSVHandler(dbConn)))

	mux.HandleFunc("/boleta/nueva", boleta.NewBoletaHandler(dbConn, cfg, sessions, pages))
	mux.HandleFunc("/boleta/eliminar/", sessions.RequireAdmin(boleta.DeleteHandler(dbConn)))
	mux.HandleFunc("/boleta/cambiar-estado/", sessions.RequireAdmin(boleta.ChangeStatusHandler(dbConn)))
	mux.HandleFunc("/boleta/", sessions.RequireLogin(boleta.DetailHandler(dbConn, sessions, pages)))
}
