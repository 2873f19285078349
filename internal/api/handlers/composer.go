package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/Conceptual-Machines/magda-composer/internal/composer/lyrics"
	"github.com/Conceptual-Machines/magda-composer/internal/middleware"
	"github.com/Conceptual-Machines/magda-composer/internal/models"
	"github.com/Conceptual-Machines/magda-composer/internal/music"
	"github.com/Conceptual-Machines/magda-composer/internal/services"
	"github.com/gin-gonic/gin"
)

type ComposerHandler struct {
	composer *services.ComposerService
}

func NewComposerHandler(composer *services.ComposerService) *ComposerHandler {
	return &ComposerHandler{composer: composer}
}

// callerContext carries the caller's role into the service for event limits
func callerContext(c *gin.Context) context.Context {
	return services.WithRole(c.Request.Context(), middleware.GetCurrentRole(c))
}

type VoiceResponse struct {
	Voice models.RenderedVoice `json:"voice"`
}

type VoicesResponse struct {
	Voices []models.RenderedVoice `json:"voices"`
}

type IsorhythmRequest struct {
	Color       []any     `json:"color" binding:"required"`
	Talea       []float64 `json:"talea" binding:"required"`
	Length      *int      `json:"length"`
	ColorOffset int       `json:"color_offset"`
	TaleaOffset int       `json:"talea_offset"`
	Gap         float64   `json:"gap"`
}

func (h *ComposerHandler) Isorhythm(c *gin.Context) {
	var req IsorhythmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	voice, err := h.composer.Isorhythm(callerContext(c), services.IsorhythmParams{
		Color:       req.Color,
		Talea:       req.Talea,
		Length:      req.Length,
		ColorOffset: req.ColorOffset,
		TaleaOffset: req.TaleaOffset,
		Gap:         req.Gap,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VoiceResponse{Voice: services.RenderVoice(0, voice)})
}

type CanonRequest struct {
	Voices  [][]models.EventInput `json:"voices" binding:"required,min=1"`
	Delay   float64               `json:"delay"`
	Framing string                `json:"framing"`
}

func (h *ComposerHandler) Canon(c *gin.Context) {
	var req CanonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	voices, err := services.DecodeVoices(req.Voices)
	if err != nil {
		respondError(c, err)
		return
	}

	out, err := h.composer.Canon(callerContext(c), voices, req.Delay, req.Framing)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VoicesResponse{Voices: services.RenderVoices(out)})
}

type HocketRequest struct {
	Melody []models.EventInput `json:"melody" binding:"required"`
	Voices int                 `json:"voices" binding:"required,min=1"`
}

func (h *ComposerHandler) Hocket(c *gin.Context) {
	var req HocketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Voices > maxHocketVoices {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many voices"})
		return
	}

	melody, err := services.DecodeVoice(req.Melody)
	if err != nil {
		respondError(c, err)
		return
	}

	out, err := h.composer.Hocket(callerContext(c), melody, req.Voices)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VoicesResponse{Voices: services.RenderVoices(out)})
}

type TintinnabuliRequest struct {
	Melody      []models.EventInput `json:"melody" binding:"required"`
	Chord       []any               `json:"chord"`
	ChordSymbol string              `json:"chord_symbol"`
	Position    int                 `json:"position"`
	Direction   string              `json:"direction"`
	Mode        string              `json:"mode"`
}

func (h *ComposerHandler) Tintinnabuli(c *gin.Context) {
	var req TintinnabuliRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	melody, err := services.DecodeVoice(req.Melody)
	if err != nil {
		respondError(c, err)
		return
	}

	tvoice, err := h.composer.Tintinnabuli(callerContext(c), melody, services.TintinnabuliParams{
		Chord:       req.Chord,
		ChordSymbol: req.ChordSymbol,
		Position:    req.Position,
		Direction:   req.Direction,
		Mode:        req.Mode,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VoicesResponse{Voices: services.RenderVoices([]music.Voice{melody, tvoice})})
}

type SyllabifyRequest struct {
	Text string `json:"text" binding:"required"`
}

type SyllabifyResponse struct {
	Lyrics []music.Lyric `json:"lyrics"`
	Text   string        `json:"text"`
}

func (h *ComposerHandler) Syllabify(c *gin.Context) {
	var req SyllabifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	syllables := h.composer.Syllabify(callerContext(c), req.Text)
	c.JSON(http.StatusOK, SyllabifyResponse{Lyrics: syllables, Text: lyrics.Text(syllables)})
}

type ApplyLyricsRequest struct {
	Melody      []models.EventInput `json:"melody" binding:"required"`
	Text        string              `json:"text" binding:"required"`
	MinInterval *float64            `json:"min_interval"`
}

func (h *ComposerHandler) ApplyLyrics(c *gin.Context) {
	var req ApplyLyricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	minInterval := defaultMinInterval
	if req.MinInterval != nil {
		minInterval = *req.MinInterval
	}

	melody, err := services.DecodeVoice(req.Melody)
	if err != nil {
		respondError(c, err)
		return
	}

	out, err := h.composer.ApplyLyrics(callerContext(c), melody, req.Text, minInterval)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VoiceResponse{Voice: services.RenderVoice(0, out)})
}

type PentatonicRequest struct {
	Tonic any    `json:"tonic" binding:"required"`
	Mode  string `json:"mode"`
}

type PentatonicResponse struct {
	Tonic     string   `json:"tonic"`
	Mode      string   `json:"mode"`
	Pitches   []string `json:"pitches"`
	Intervals []int    `json:"intervals"`
}

func (h *ComposerHandler) Pentatonic(c *gin.Context) {
	var req PentatonicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	scale, err := h.composer.Pentatonic(callerContext(c), req.Tonic, req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := PentatonicResponse{
		Tonic: scale.Tonic().Name(),
		Mode:  scale.Mode().String(),
	}
	for _, p := range scale.Pitches() {
		resp.Pitches = append(resp.Pitches, p.Name())
	}
	for _, iv := range scale.Intervals() {
		resp.Intervals = append(resp.Intervals, iv.Semitones)
	}

	c.JSON(http.StatusOK, resp)
}

type ScaleTransposeRequest struct {
	Tonic  any                 `json:"tonic" binding:"required"`
	Mode   string              `json:"mode"`
	Melody []models.EventInput `json:"melody" binding:"required"`
	Steps  int                 `json:"steps"`
}

func (h *ComposerHandler) ScaleTranspose(c *gin.Context) {
	var req ScaleTransposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	melody, err := services.DecodeVoice(req.Melody)
	if err != nil {
		respondError(c, err)
		return
	}

	out, err := h.composer.ScaleTranspose(callerContext(c), req.Tonic, req.Mode, melody, req.Steps)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VoiceResponse{Voice: services.RenderVoice(0, out)})
}

// SetRequest names a set by its pitch classes or by its Forte class
type SetRequest struct {
	PCs   []any  `json:"pcs"`
	Forte string `json:"forte"`
}

func (h *ComposerHandler) resolveSet(req SetRequest) ([]any, error) {
	if len(req.PCs) == 0 && req.Forte != "" {
		return h.composer.ForteSet(req.Forte)
	}
	return req.PCs, nil
}

func (h *ComposerHandler) AnalyzeSet(c *gin.Context) {
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pcs, err := h.resolveSet(req)
	if err != nil {
		respondError(c, err)
		return
	}

	analysis, err := h.composer.AnalyzeSet(callerContext(c), pcs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *ComposerHandler) Subsets(c *gin.Context) {
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pcs, err := h.resolveSet(req)
	if err != nil {
		respondError(c, err)
		return
	}

	subsets, err := h.composer.Subsets(callerContext(c), pcs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subsets": subsets})
}

type TOperatorRequest struct {
	A []any `json:"a" binding:"required"`
	B []any `json:"b" binding:"required"`
}

func (h *ComposerHandler) TOperator(c *gin.Context) {
	var req TOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	n, err := h.composer.TOperator(callerContext(c), req.A, req.B)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"t": n})
}

func (h *ComposerHandler) CompareSets(c *gin.Context) {
	var req TOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cmp, err := h.composer.CompareSets(callerContext(c), req.A, req.B)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cmp)
}

type DSLRequest struct {
	DSL string `json:"dsl" binding:"required"`
}

type DSLResponse struct {
	Actions []map[string]any       `json:"actions"`
	Voices  []models.RenderedVoice `json:"voices"`
}

func (h *ComposerHandler) DSL(c *gin.Context) {
	var req DSLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if len(req.DSL) > maxDSLLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "DSL script too long"})
		return
	}

	userID, _ := middleware.GetCurrentUser(c)
	log.Printf("🎼 DSL request from user %s", userID)

	result, err := h.composer.ExecuteDSL(callerContext(c), req.DSL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, DSLResponse{
		Actions: result.Actions,
		Voices:  services.RenderVoices(result.Voices),
	})
}
