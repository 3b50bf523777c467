// Package authhttp exposes a socialite.Manager over HTTP.
//
// Handler mounts two routes per driver on a chi router:
//
//	GET /{driver}           redirects the browser to the provider
//	GET /{driver}/callback  completes the login and hands the user on
//
// Sessions are supplied by a SessionSource. StoreSessions keeps values in a
// server-side sessionstore.Store keyed by a random id cookie; CookieSessions
// keeps them in encrypted cookies.
//
//	h := authhttp.New(manager, authhttp.StoreSessions(store),
//		authhttp.WithLogger(log),
//		authhttp.WithSuccessHandler(func(w http.ResponseWriter, r *http.Request, driver string, u *socialite.User) {
//			// create the local account, start an app session, redirect
//		}),
//	)
//
//	r := chi.NewRouter()
//	r.Use(authhttp.RequestID)
//	r.Mount("/auth", h.Routes())
//
// Errors are rendered as JSON with a status derived from the socialite
// error kind; see StatusCode.
package authhttp
