package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/harmonet/logging"
	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
	"github.com/jsphweid/harmonet/roman"
	"github.com/jsphweid/harmonet/texture"
	"github.com/jsphweid/harmonet/transpose"
	"github.com/jsphweid/harmonet/vocabulary"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	port  int
	watch bool
)

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config)")
	serveCmd.Flags().BoolVar(&watch, "watch", false, "reload the vocabulary file when it changes")
	serveCmd.Flags().Uint64Var(&seed, "seed", 0, "seed for template choice")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves resolution, texturing and transposition over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		vocab, err := loadVocabulary(cfg)
		if err != nil {
			return err
		}
		sel, err := newSelector()
		if err != nil {
			return err
		}
		srv := NewServer(vocab, newEngine(cmd, seed), sel)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if watch || cfg.Watch {
			if cfg.Vocab == "" {
				return errors.New("--watch needs a vocabulary file")
			}
			if err := vocabulary.Watch(ctx, cfg.Vocab, srv.SetVocabulary, logging.Default()); err != nil {
				return err
			}
		}

		if !cmd.Flags().Changed("port") {
			port = cfg.Port
		}
		return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
	},
}

type Server struct {
	vocab    atomic.Pointer[vocabulary.Table]
	engine   *texture.Engine
	selector *transpose.Selector
	log      logging.Logger
}

func NewServer(vocab *vocabulary.Table, engine *texture.Engine, selector *transpose.Selector) *Server {
	s := &Server{engine: engine, selector: selector, log: logging.Default()}
	s.vocab.Store(vocab)
	return s
}

// SetVocabulary swaps the table used by subsequent requests.
func (s *Server) SetVocabulary(t *vocabulary.Table) {
	s.vocab.Store(t)
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/resolve", s.HandleResolve).Methods("POST")
	router.HandleFunc("/texturize", s.HandleTexturize).Methods("POST")
	router.HandleFunc("/transpositions", s.HandleTranspositions).Methods("POST")
	router.HandleFunc("/templates", s.HandleTemplates).Methods("GET")
	router.HandleFunc("/healthz", s.HandleHealth).Methods("GET")
	return cors.Default().Handler(router)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", logging.Fields{"addr": addr})
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode request body: "+err.Error())
		return false
	}
	return true
}

func queryFromBody(b model.FrameBody) (roman.Query, error) {
	local, err := pitch.ParseKey(b.LocalKey)
	if err != nil {
		return roman.Query{}, err
	}
	tonicized, err := pitch.ParseKey(b.TonicizedKey)
	if err != nil {
		return roman.Query{}, err
	}
	pcs := make([]pitch.PitchClass, 0, len(b.PitchClassSet))
	for _, n := range b.PitchClassSet {
		if n < 0 || n > 11 {
			return roman.Query{}, fmt.Errorf("pitch class %d out of range", n)
		}
		pcs = append(pcs, pitch.PitchClass(n))
	}
	return roman.Query{
		Bass:          b.Bass,
		Tenor:         b.Tenor,
		Alto:          b.Alto,
		Soprano:       b.Soprano,
		PitchClassSet: pitch.NewPitchClassSet(pcs...),
		LocalKey:      local,
		TonicizedKey:  tonicized,
	}, nil
}

func (s *Server) HandleResolve(w http.ResponseWriter, r *http.Request) {
	var input model.ResolveRequestBody
	if !decode(w, r, &input) {
		return
	}

	resolver := roman.NewResolver(s.vocab.Load(), roman.WithLogger(s.log))
	res := model.ResolveResponse{RequestId: uuid.New().String(), Results: make([]model.ResolveResult, 0, len(input.Frames))}
	for i, frame := range input.Frames {
		result := model.ResolveResult{Index: i}
		q, err := queryFromBody(frame)
		if err == nil {
			var rc model.ResolvedChord
			if rc, err = resolver.Resolve(q); err == nil {
				rc = roman.Display(rc)
				result.RomanNumeral, result.ChordLabel, result.Forced = rc.RomanNumeral, rc.ChordLabel, rc.Forced
			}
		}
		if err != nil {
			result.Error = err.Error()
			s.log.Warn("frame failed", logging.Fields{"request": res.RequestId, "frame": i, "error": err.Error()})
		}
		res.Results = append(res.Results, result)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleTexturize(w http.ResponseWriter, r *http.Request) {
	var input model.TexturizeRequestBody
	if !decode(w, r, &input) {
		return
	}

	res := model.TexturizeResponse{RequestId: uuid.New().String(), Results: make([]model.TexturizeResult, 0, len(input.Events))}
	for i, ev := range input.Events {
		result := model.TexturizeResult{Index: i}
		subs, err := s.engine.Apply(model.ChordEvent{
			Duration:  ev.Duration,
			Notes:     ev.Notes,
			Intervals: ev.Intervals,
		}, input.Template)
		if err != nil {
			result.Error = err.Error()
		}
		for _, sub := range subs {
			result.SubEvents = append(result.SubEvents, model.SubEventBody{
				Offset:    sub.Offset,
				Duration:  sub.Duration,
				Notes:     sub.Notes,
				Intervals: sub.Intervals,
				IsOnset:   sub.IsOnset,
			})
		}
		res.Results = append(res.Results, result)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleTranspositions(w http.ResponseWriter, r *http.Request) {
	var input model.TranspositionsRequestBody
	if !decode(w, r, &input) {
		return
	}
	keys, err := pitch.ParseKeys(input.Keys)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(keys) == 0 {
		writeError(w, http.StatusBadRequest, "no keys given")
		return
	}
	if input.Split == "" {
		input.Split = model.SplitTraining
	}

	res := model.TranspositionsResponse{Intervals: []model.TranspositionResult{}}
	for _, iv := range s.selector.ForSplit(input.Split, keys) {
		res.Intervals = append(res.Intervals, model.TranspositionResult{Interval: iv.Name, Semitones: iv.Shift()})
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	res := []model.TemplateInfo{}
	for _, t := range s.engine.Templates() {
		res = append(res, model.TemplateInfo{Name: t.Name(), Durations: t.Durations(), NoteCounts: t.NoteCounts()})
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sets": s.vocab.Load().Len()})
}
