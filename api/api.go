// Package api exposes a DBMS over HTTP. Bodies carrying schema definitions
// and rows are plain text; every response is JSON.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/ulmenhaus/tabula/dbms"
	"github.com/ulmenhaus/tabula/types"
)

const (
	// MaxPayloadSize caps request bodies
	MaxPayloadSize = 50000000 // 50 Mb

	RequestIDHeader = "X-Request-Id"
	importFormField = "db_file"
)

// A Server translates HTTP requests into DBMS operations
type Server struct {
	DBMS   *dbms.DBMS
	Logger *log.Logger

	router *httprouter.Router
}

// NewServer returns a server with all routes registered
func NewServer(d *dbms.DBMS, logger *log.Logger) *Server {
	s := &Server{
		DBMS:   d,
		Logger: logger,
		router: httprouter.New(),
	}
	r := s.router
	r.GET("/databases", s.listDatabases)
	r.POST("/databases/:db", s.createDatabase)
	r.DELETE("/databases/:db", s.dropDatabase)
	r.GET("/databases/:db/tables", s.listTables)
	r.GET("/databases/:db/export", s.exportDatabase)
	r.POST("/import", s.importDatabase)

	r.POST("/databases/:db/tables/:table", s.createTable)
	r.GET("/databases/:db/tables/:table", s.getSchema)
	r.DELETE("/databases/:db/tables/:table", s.dropTable)
	r.POST("/databases/:db/tables/:table/drop-duplicates", s.dropDuplicates)

	r.GET("/databases/:db/tables/:table/rows", s.listRows)
	r.POST("/databases/:db/tables/:table/rows", s.insertRow)
	r.PUT("/databases/:db/tables/:table/rows", s.updateRow)
	r.DELETE("/databases/:db/tables/:table/rows/:id", s.deleteRow)
	return s
}

// ServeHTTP tags the request with an id, dispatches it, and logs the outcome
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	w.Header().Set(RequestIDHeader, id)
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	req.Body = http.MaxBytesReader(rec, req.Body, MaxPayloadSize)
	s.router.ServeHTTP(rec, req)
	s.Logger.Printf("%s %s %s %d %s", id, req.Method, req.URL.Path, rec.status, time.Since(start))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// StatusFor maps an error to the HTTP status reported to callers
func StatusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch types.KindOf(err) {
	case types.KindUnknown:
		return http.StatusInternalServerError
	case types.KindDatabaseNotFound, types.KindTableNotFound, types.KindRowNotFound:
		return http.StatusNotFound
	case types.KindDatabaseExists, types.KindTableExists, types.KindDuplicateIdentifier:
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.Logger.Printf("failed to write response: %s", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, StatusFor(err), map[string]string{"error": err.Error()})
}

func (s *Server) reply(w http.ResponseWriter, status int, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, status, map[string]string{"status": http.StatusText(status)})
}

func readText(req *http.Request) (string, error) {
	b, err := io.ReadAll(req.Body)
	if err != nil {
		return "", types.WrapError(types.KindParse, err, "failed to read body")
	}
	return string(b), nil
}

func (s *Server) listDatabases(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, s.DBMS.ListDatabases())
}

func (s *Server) createDatabase(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	s.reply(w, http.StatusCreated, s.DBMS.CreateDatabase(ps.ByName("db")))
}

func (s *Server) dropDatabase(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	s.reply(w, http.StatusOK, s.DBMS.DropDatabase(ps.ByName("db")))
}

func (s *Server) listTables(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	tables, err := s.DBMS.ListTables(ps.ByName("db"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tables)
}

func (s *Server) exportDatabase(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	path, snapshot, err := s.DBMS.Export(ps.ByName("db"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.Logger.Printf("exported %s to %s (%s)", ps.ByName("db"), path, humanize.Bytes(uint64(len(snapshot))))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+ps.ByName("db")+".json\"")
	w.WriteHeader(http.StatusOK)
	w.Write(snapshot)
}

func (s *Server) importDatabase(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	var src io.Reader = req.Body
	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
		f, _, err := req.FormFile(importFormField)
		if err != nil {
			s.writeError(w, types.WrapError(types.KindDecode, err, "missing %s", importFormField))
			return
		}
		defer f.Close()
		src = f
	}
	name, err := s.DBMS.Import(src)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (s *Server) createTable(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	text, err := readText(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.reply(w, http.StatusCreated, s.DBMS.CreateTable(ps.ByName("db"), ps.ByName("table"), text))
}

func (s *Server) getSchema(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	schema, err := s.DBMS.Schema(ps.ByName("db"), ps.ByName("table"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"schema": schema.String()})
}

func (s *Server) dropTable(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	s.reply(w, http.StatusOK, s.DBMS.DropTable(ps.ByName("db"), ps.ByName("table")))
}

func (s *Server) dropDuplicates(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	removed, err := s.DBMS.DropDuplicates(ps.ByName("db"), ps.ByName("table"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (s *Server) listRows(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	rows, err := s.DBMS.ListRows(ps.ByName("db"), ps.ByName("table"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) insertRow(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	text, err := readText(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.reply(w, http.StatusCreated, s.DBMS.InsertRow(ps.ByName("db"), ps.ByName("table"), text))
}

func (s *Server) updateRow(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	text, err := readText(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.reply(w, http.StatusOK, s.DBMS.UpdateRow(ps.ByName("db"), ps.ByName("table"), text))
}

func (s *Server) deleteRow(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	s.reply(w, http.StatusOK, s.DBMS.DeleteRow(ps.ByName("db"), ps.ByName("table"), ps.ByName("id")))
}
