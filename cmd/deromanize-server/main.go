// Command deromanize-server exposes a compiled profile as a JSON REST
// API.
//
// Endpoints:
//
//	GET  /api/decode?word=<romanized>&key=<name>
//	POST /api/decode/text   body: {"text":"..."}
//	GET  /api/keys
//	POST /api/reload        requires "Authorization: Bearer <jwt>"
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/spf13/pflag"

	"github.com/ubffm/deromanize"
	"github.com/ubffm/deromanize/internal/profileio"
)

var (
	profilePath = pflag.StringP("profile", "p", "", "path to a TOML profile file (required)")
	addr        = pflag.String("addr", ":8080", "listen address")
	frontName   = pflag.String("front", "front", "name of the front Key used by /api/decode/text")
	midName     = pflag.String("mid", "mid", "name of the mid Key used by /api/decode/text")
	endName     = pflag.String("end", "end", "name of the end Key used by /api/decode/text")
	adminSecret = pflag.String("admin-secret", "", "HMAC secret for /api/reload bearer tokens (disables /api/reload if empty)")
)

// engineStore holds the currently-live Engine behind an atomic pointer,
// so /api/reload can hot-swap it without a restart and without a lock
// on the read path.
type engineStore struct {
	ptr atomic.Pointer[deromanize.Engine]
}

func (s *engineStore) Load() *deromanize.Engine { return s.ptr.Load() }
func (s *engineStore) Store(e *deromanize.Engine) { s.ptr.Store(e) }

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

type candidateJSON struct {
	Value  string `json:"value"`
	Weight int    `json:"weight"`
}

func toCandidatesJSON(rl deromanize.ReplacementList) []candidateJSON {
	sorted := rl.Sort()
	out := make([]candidateJSON, 0, len(sorted.Candidates))
	for _, c := range sorted.Candidates {
		out = append(out, candidateJSON{Value: c.Value, Weight: c.Weight})
	}
	return out
}

type decodeResponse struct {
	Word       string          `json:"word"`
	Candidates []candidateJSON `json:"candidates"`
}

func handleDecode(store *engineStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		keyName := r.URL.Query().Get("key")
		if keyName == "" {
			keyName = "base"
		}

		engine := store.Load()
		k, err := engine.Key(keyName)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		parts, err := k.GetAllParts(word)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		rl, err := deromanize.AddReplacementLists(parts...)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, decodeResponse{Word: word, Candidates: toCandidatesJSON(rl)})
	}
}

type decodeTextResponse struct {
	Words []decodeResponse `json:"words"`
}

func handleDecodeText(store *engineStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}

		engine := store.Load()
		front, err := engine.Key(*frontName)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		mid, err := engine.Key(*midName)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		end, err := engine.Key(*endName)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		orch := deromanize.FrontMidEnd{Front: front, Mid: mid, End: end}

		results, err := deromanize.DecodeText(orch, body.Text)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		out := make([]decodeResponse, 0, len(results))
		for _, rl := range results {
			out = append(out, decodeResponse{Word: rl.Key, Candidates: toCandidatesJSON(rl)})
		}
		writeJSON(w, http.StatusOK, decodeTextResponse{Words: out})
	}
}

type keysResponse struct {
	Keys []string `json:"keys"`
}

func handleKeys(store *engineStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, keysResponse{Keys: store.Load().Keys()})
	}
}

// requireBearer validates a JWT bearer token signed with secret before
// calling next, mirroring the shape (not the user-lookup logic) of the
// tunaq server's token validation: the reload endpoint has no user
// database to check against, just a shared admin secret.
func requireBearer(secret []byte, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "authorization header not in Bearer format")
			return
		}

		_, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer("deromanize-server"), jwt.WithSubject("admin"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}

		next(w, r)
	}
}

func handleReload(store *engineStore, mu *sync.Mutex) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}

		mu.Lock()
		defer mu.Unlock()

		profile, err := profileio.LoadTOML(*profilePath)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		engine, err := deromanize.Build(profile)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		store.Store(engine)
		writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
	}
}

// withRequestID attaches a fresh correlation id to every request's
// logs, a convenience collatinus's own cmd/server does without (it has
// no request-scoped identifiers at all).
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("request_id=%s method=%s path=%s duration=%s", id, r.Method, r.URL.Path, time.Since(start))
	})
}

func main() {
	pflag.Parse()

	if *profilePath == "" {
		log.Fatal("deromanize-server: --profile is required")
	}

	log.Printf("loading profile from %s …", *profilePath)
	profile, err := profileio.LoadTOML(*profilePath)
	if err != nil {
		log.Fatalf("failed to load profile: %v", err)
	}
	engine, err := deromanize.Build(profile)
	if err != nil {
		log.Fatalf("failed to compile profile: %v", err)
	}
	log.Println("profile compiled")

	store := &engineStore{}
	store.Store(engine)
	var reloadMu sync.Mutex

	mux := http.NewServeMux()
	mux.HandleFunc("/api/decode/text", handleDecodeText(store))
	mux.HandleFunc("/api/decode", handleDecode(store))
	mux.HandleFunc("/api/keys", handleKeys(store))

	if *adminSecret != "" {
		reload := requireBearer([]byte(*adminSecret), handleReload(store, &reloadMu))
		mux.HandleFunc("/api/reload", reload)
	}

	handler := cors.Default().Handler(mux)
	handler = withRequestID(handler)

	srv := &http.Server{
		Addr:    *addr,
		Handler: handler,
	}

	log.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
