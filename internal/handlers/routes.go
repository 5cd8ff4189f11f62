package handlers

import "net/http"

// RegisterRoutes wires the JSON API onto mux
func RegisterRoutes(mux *http.ServeMux, m *Middleware, mode *ModeHandler, teacher *TeacherHandler, play *PlayHandler) {
	mux.HandleFunc("GET /healthz", Healthz)

	// Mode switching
	mux.HandleFunc("GET /api/session", m.Session(mode.Session))
	mux.HandleFunc("POST /api/mode/play", m.Public(mode.RequestPlay))
	mux.HandleFunc("POST /api/mode/teacher", m.Public(mode.RequestTeacher))
	mux.HandleFunc("POST /api/mode/pin", m.Public(mode.SetPin))
	mux.HandleFunc("POST /api/mode/pin/validate", m.Public(mode.ValidatePin))
	mux.HandleFunc("POST /api/mode/cancel", m.Public(mode.Cancel))

	// Teacher mode
	mux.HandleFunc("GET /api/teacher/words", m.Teacher(teacher.ListWords))
	mux.HandleFunc("POST /api/teacher/words", m.Teacher(teacher.AddWord))
	mux.HandleFunc("POST /api/teacher/words/bulk", m.Teacher(teacher.AddBulk))
	mux.HandleFunc("POST /api/teacher/words/random", m.Teacher(teacher.AddRandom))
	mux.HandleFunc("POST /api/teacher/words/{index}", m.Teacher(teacher.EditWord))
	mux.HandleFunc("POST /api/teacher/words/{index}/delete", m.Teacher(teacher.DeleteWord))

	// Play mode
	mux.HandleFunc("GET /api/play/state", m.Play(play.State))
	mux.HandleFunc("POST /api/play/ready", m.Play(play.Ready))
	mux.HandleFunc("POST /api/play/guess", m.Play(play.Guess))
	mux.HandleFunc("POST /api/play/hint", m.Play(play.Hint))
	mux.HandleFunc("POST /api/play/restart", m.Play(play.Restart))
	mux.HandleFunc("GET /api/play/speech", m.Play(play.Speech))
}
