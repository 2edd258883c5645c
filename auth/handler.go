package auth

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"lavanderia/database"
	"lavanderia/render"
)

type loginForm struct {
	Next string
}

// LoginHandler serves the staff login page and checks the submitted password
// against the configured admin password first, then the user password. The
// comparison is plaintext equality, matching the system this replaces; see
// DESIGN.md for the open hardening questions.
func LoginHandler(db *sqlx.DB, sessions *Sessions, pages *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := sessions.Read(r)
		next := r.URL.Query().Get("next")

		if r.Method != http.MethodPost {
			pages.Show(w, r, "login.html", claims.User, claims.Admin, loginForm{Next: next})
			return
		}

		password := r.FormValue("password")
		adminPassword, err := database.GetConfigValue(db, database.KeyAdminPassword, database.DefaultAdminPassword)
		if err != nil {
			logrus.Errorf("failed to read admin password: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		userPassword, err := database.GetConfigValue(db, database.KeyUserPassword, database.DefaultUserPassword)
		if err != nil {
			logrus.Errorf("failed to read user password: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		switch password {
		case adminPassword:
			if err := sessions.Write(w, Claims{User: true, Admin: true, LoginDate: today()}); err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			render.AddFlash(w, "success", "¡Inicio de sesión como Administrador!")
		case userPassword:
			if err := sessions.Write(w, Claims{User: true, Admin: claims.Admin, LoginDate: today()}); err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			render.AddFlash(w, "success", "¡Inicio de sesión exitoso!")
		default:
			pages.Show(w, r, "login.html", claims.User, claims.Admin, loginForm{Next: next},
				render.Flash{Category: "error", Message: "Contraseña incorrecta. Inténtalo de nuevo."})
			return
		}

		if next == "" {
			next = "/boletas"
		}
		http.Redirect(w, r, next, http.StatusSeeOther)
	}
}

// LogoutHandler drops the whole session.
func LogoutHandler(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Clear(w)
		render.AddFlash(w, "info", "Has cerrado sesión.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// AdminLoginHandler grants the admin flag only; an existing user session is
// preserved.
func AdminLoginHandler(db *sqlx.DB, sessions *Sessions, pages *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := sessions.Read(r)
		next := r.URL.Query().Get("next")

		if r.Method != http.MethodPost {
			pages.Show(w, r, "admin_login.html", claims.User, claims.Admin, loginForm{Next: next})
			return
		}

		adminPassword, err := database.GetConfigValue(db, database.KeyAdminPassword, database.DefaultAdminPassword)
		if err != nil {
			logrus.Errorf("failed to read admin password: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if r.FormValue("password") != adminPassword {
			pages.Show(w, r, "admin_login.html", claims.User, claims.Admin, loginForm{Next: next},
				render.Flash{Category: "error", Message: "Contraseña de administrador incorrecta."})
			return
		}

		claims.Admin = true
		if err := sessions.Write(w, claims); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if next == "" {
			next = "/admin"
		}
		http.Redirect(w, r, next, http.StatusSeeOther)
	}
}

// AdminLogoutHandler drops the admin flag but keeps any user session.
func AdminLogoutHandler(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := sessions.Read(r)
		claims.Admin = false
		if err := sessions.Write(w, claims); err != nil {
			sessions.Clear(w)
		}
		render.AddFlash(w, "info", "Has cerrado la sesión de administrador.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
