package server

import (
	"net/http"
	"time"

	"github.com/Ashenafi-pixel/lotto-sphere/draw"
	"github.com/Ashenafi-pixel/lotto-sphere/reference"
	"github.com/Ashenafi-pixel/lotto-sphere/session"

	"github.com/google/uuid"
)

type sessionResponse struct {
	ID         uuid.UUID              `json:"id"`
	CreatedAt  time.Time              `json:"createdAt"`
	Reference  session.ReferenceState `json:"reference"`
	Scoreboard session.Scoreboard     `json:"scoreboard"`
}

type shuffleResponse struct {
	Reference draw.Draw        `json:"reference"`
	Origin    reference.Origin `json:"origin"`
}

func describe(sess *session.Session) sessionResponse {
	return sessionResponse{
		ID:         sess.ID(),
		CreatedAt:  sess.CreatedAt(),
		Reference:  sess.Reference(),
		Scoreboard: sess.Scoreboard(),
	}
}

// lookup resolves {id} to a session, writing the error response itself when
// it cannot.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidSessionID, "invalid session id")
		return nil, false
	}
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, id.String(), "session lookup", err)
		return nil, false
	}
	return sess, true
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create(r.Context())
	if err != nil {
		writeSessionError(w, "", "create session", err)
		return
	}
	writeJSON(w, http.StatusCreated, describe(sess))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, describe(sess))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidSessionID, "invalid session id")
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		writeSessionError(w, id.String(), "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) play(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	res, err := sess.Play(r.Context())
	if err != nil {
		writeSessionError(w, sess.ID().String(), "play", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) getReference(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Reference())
}

func (s *Server) shuffleReference(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	d, origin, err := sess.Reshuffle(r.Context())
	if err != nil {
		writeSessionError(w, sess.ID().String(), "shuffle", err)
		return
	}
	writeJSON(w, http.StatusOK, shuffleResponse{Reference: d, Origin: origin})
}

func (s *Server) getScore(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Scoreboard())
}

func (s *Server) resetScore(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.ResetScore(r.Context()))
}
