// Package sessionstore provides storage for the short-lived values a
// socialite login writes between the redirect and the callback: the state
// token and the PKCE code verifier.
//
// Three backends are available:
//
//   - MemoryStore keeps values in process memory with a sliding TTL and a
//     background cleanup loop. Suitable for a single instance.
//   - RedisStore keeps one hash per session id in Redis with a TTL. Suitable
//     for several instances behind a load balancer.
//   - CookieCodec stores every value in its own AES-GCM encrypted cookie, so
//     no server-side storage is needed at all.
//
// Server-side stores are keyed by a session id the application owns
// (usually a random id in a cookie). Bind turns a store and an id into the
// socialite.Session a provider expects:
//
//	store := sessionstore.NewMemoryStore(10*time.Minute, time.Minute)
//	defer store.Close()
//
//	sess := sessionstore.Bind(store, sid)
//	url, err := provider.Redirect(ctx, sess)
//
// Cookie sessions are bound to one request and its response writer:
//
//	codec, err := sessionstore.NewCookieCodec([]string{secret})
//	sess := codec.Session(w, r)
package sessionstore
