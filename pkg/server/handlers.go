package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sda-fusion/fusiongen/pkg/confparse"
	"github.com/sda-fusion/fusiongen/pkg/generate"
	"github.com/sda-fusion/fusiongen/pkg/util"
)

var allowedUploadExts = map[string]bool{
	".txt":  true,
	".cfg":  true,
	".conf": true,
}

// uploadResult reports the parse outcome for one uploaded file.
type uploadResult struct {
	Filename string                  `json:"filename"`
	Record   *confparse.DeviceRecord `json:"record,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

// handleUpload parses uploaded border node configurations and returns the
// extracted facts. A config with no hostname line is unusable downstream
// (handoffs reference devices by hostname), so it is reported as a per-file
// error rather than silently accepted.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parsing upload: %v", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded (use form field 'files')")
		return
	}

	var results []uploadResult
	for _, fh := range files {
		res := uploadResult{Filename: fh.Filename}

		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedUploadExts[ext] {
			res.Error = fmt.Sprintf("unsupported file type %q (expected .txt, .cfg, or .conf)", ext)
			results = append(results, res)
			continue
		}

		f, err := fh.Open()
		if err != nil {
			res.Error = fmt.Sprintf("opening file: %v", err)
			results = append(results, res)
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			res.Error = fmt.Sprintf("reading file: %v", err)
			results = append(results, res)
			continue
		}

		record := confparse.Parse(string(data))
		if record.Hostname == "" {
			res.Error = "no hostname found in configuration"
			results = append(results, res)
			continue
		}

		res.Record = record
		results = append(results, res)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// generateRequest is the JSON body of POST /api/generate. Border configs
// travel as raw text so the front end never needs server-side upload state.
type generateRequest struct {
	FusionRouters []generate.RouterParams `json:"fusion_routers"`
	BorderConfigs []string                `json:"border_configs"`
	Handoffs      []generate.Handoff      `json:"handoffs"`
	VRFConfigs    []generate.VRFConfig    `json:"vrf_configs,omitempty"`
}

// generatedConfig is one rendered router in the response.
type generatedConfig struct {
	Hostname string   `json:"hostname"`
	Config   string   `json:"config"`
	File     string   `json:"file,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding request: %v", err))
		return
	}
	if len(req.FusionRouters) == 0 {
		writeError(w, http.StatusBadRequest, "at least one fusion router is required")
		return
	}
	if len(req.FusionRouters) > 2 {
		writeError(w, http.StatusBadRequest, "at most 2 fusion routers are supported")
		return
	}
	if len(req.BorderConfigs) == 0 {
		writeError(w, http.StatusBadRequest, "at least one border config is required")
		return
	}

	if s.defaultAS != 0 {
		for i := range req.FusionRouters {
			if req.FusionRouters[i].ASNumber == 0 {
				req.FusionRouters[i].ASNumber = s.defaultAS
			}
		}
	}

	var records []*confparse.DeviceRecord
	for i, text := range req.BorderConfigs {
		record := confparse.Parse(text)
		if record.Hostname == "" {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("border config %d: no hostname found", i))
			return
		}
		records = append(records, record)
	}

	var configs []generatedConfig
	for _, params := range req.FusionRouters {
		data, err := generate.Build(params, records, req.Handoffs, req.VRFConfigs)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, util.ErrValidationFailed) || errors.Is(err, util.ErrInvalidPeerAddress) {
				status = http.StatusBadRequest
			}
			writeError(w, status, err.Error())
			return
		}

		text, err := generate.Render(data)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		cfg := generatedConfig{
			Hostname: params.Hostname,
			Config:   text,
			Warnings: data.Warnings,
		}
		if s.store != nil {
			path, err := s.store.Save(params.Hostname, text)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			cfg.File = filepath.Base(path)
		}
		configs = append(configs, cfg)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"configs": configs})
}

// downloadRequest is the JSON body of POST /api/download.
type downloadRequest struct {
	Config   string `json:"config"`
	Filename string `json:"filename"`
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req downloadRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding request: %v", err))
		return
	}
	if req.Config == "" {
		writeError(w, http.StatusBadRequest, "config is required")
		return
	}

	name := req.Filename
	if name == "" {
		name = "fusion-router.cfg"
	}
	if name != filepath.Base(name) {
		writeError(w, http.StatusBadRequest, "invalid filename")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := io.WriteString(w, req.Config); err != nil {
		util.Warnf("writing download: %v", err)
	}
}

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"configs": []struct{}{}})
		return
	}
	entries, err := s.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"configs": entries})
}
