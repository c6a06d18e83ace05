package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/apiconv/apiconv/converrors"
	"github.com/apiconv/apiconv/converter"
	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
)

// sourceAuto in the path triggers schema-based source detection.
const sourceAuto = "auto"

// errorResponse is the JSON error body.
type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	target, err := formats.ParseFormat(r.PathValue("target"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	source := formats.FormatUnknown
	if seg := r.PathValue("source"); seg != sourceAuto {
		source, err = formats.ParseFormat(seg)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if _, err := converter.For(source, target); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close() //nolint:errcheck // read-only multipart part

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	doc, err := document.Decode(data, header.Filename)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	opts, err := optionsFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := converter.Convert(doc, source, target, opts)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	enc := responseEncoding(r)
	body, err := result.Document.Encode(enc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	contentType := "application/json"
	if enc == document.EncodingYAML {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Conversion-Issues", strconv.Itoa(len(result.Issues)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	type conversion struct {
		Source string `json:"source"`
		Target string `json:"target"`
	}
	out := struct {
		Formats     []string     `json:"formats"`
		Conversions []conversion `json:"conversions"`
	}{}

	for _, f := range converter.AvailableFormats() {
		out.Formats = append(out.Formats, f.String())
	}
	for _, p := range converter.Pairs() {
		out.Conversions = append(out.Conversions, conversion{
			Source: p[0].String(),
			Target: p[1].String(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// optionsFromForm maps the multipart form fields onto conversion options.
// The servers field repeats, one URL per value.
func optionsFromForm(r *http.Request) (converter.Options, error) {
	opts := converter.Options{
		Title:       r.FormValue("title"),
		Version:     r.FormValue("version"),
		Description: r.FormValue("description"),
		BasePath:    r.FormValue("base_path"),
		Servers:     r.Form["servers"],
	}
	if v := r.FormValue("skip_validation"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid skip_validation value %q", v)
		}
		opts.SkipValidation = skip
	}
	if v := r.FormValue("guess_path_params"); v != "" {
		guess, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid guess_path_params value %q", v)
		}
		opts.GuessPathParams = guess
	}
	return opts, nil
}

// responseEncoding resolves the output encoding. Precedence: explicit accept
// query parameter, then the Accept header, then JSON.
func responseEncoding(r *http.Request) document.Encoding {
	if v := r.URL.Query().Get("accept"); v != "" {
		return encodingFromMime(v, document.EncodingJSON)
	}
	if v := r.Header.Get("Accept"); v != "" {
		return encodingFromMime(v, document.EncodingJSON)
	}
	return document.EncodingJSON
}

func encodingFromMime(v string, fallback document.Encoding) document.Encoding {
	lower := strings.ToLower(v)
	switch {
	case strings.Contains(lower, "yaml") || strings.Contains(lower, "yml"):
		return document.EncodingYAML
	case strings.Contains(lower, "json"):
		return document.EncodingJSON
	default:
		return fallback
	}
}

// statusForError maps engine errors onto HTTP status codes: unsupported
// pairs are 404, malformed or non-conforming documents are 422, everything
// else is a 400.
func statusForError(err error) int {
	switch {
	case errors.Is(err, converrors.ErrUnsupportedConversion):
		return http.StatusNotFound
	case errors.Is(err, converrors.ErrSchemaValidation),
		errors.Is(err, converrors.ErrDecode),
		errors.Is(err, converrors.ErrFormatUndetectable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
