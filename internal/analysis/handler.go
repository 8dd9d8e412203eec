package analysis

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mishura/internal/api"
	"mishura/internal/logger"
	"mishura/internal/stylist"
	"mishura/internal/wallet"

	"github.com/gin-gonic/gin"
)

var errInvalidUpload = errors.New("invalid upload")

type Handler struct {
	svc           *Service
	maxImageBytes int64
}

func NewHandler(svc *Service, maxImageBytes int64) *Handler {
	return &Handler{svc: svc, maxImageBytes: maxImageBytes}
}

// AnalyzeOutfit godoc
// @Summary      Analyze a single outfit photo
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        image        formData  file    true   "Outfit photo (jpeg, png, webp)"
// @Param        occasion     formData  string  false  "Occasion"
// @Param        preferences  formData  string  false  "Free-text preferences"
// @Param        telegram_id  formData  int     false  "Telegram user id to record the consultation for"
// @Success      200          {object}  Response
// @Failure      400          {object}  api.ErrorResponse
// @Failure      402          {object}  api.ErrorResponse
// @Failure      503          {object}  api.ErrorResponse
// @Router       /api/v1/analyze-outfit [post]
func (h *Handler) AnalyzeOutfit(c *gin.Context) {
	form, ok := h.parseForm(c)
	if !ok {
		return
	}

	files := form.File["image"]
	if len(files) != 1 {
		api.Error(c, http.StatusBadRequest, api.CodeInvalidImageCount, "Загрузите одно изображение в поле image")
		return
	}
	if !h.requireConfigured(c) {
		return
	}

	req, ok := h.buildRequest(c, form, files)
	if !ok {
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newResponse(req, result))
}

// CompareOutfits godoc
// @Summary      Compare several outfit photos
// @Description  Accepts 2 to 5 photos either as repeated "images" fields or as image_0..image_4.
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        images       formData  file    true   "Outfit photos"
// @Param        occasion     formData  string  false  "Occasion"
// @Param        preferences  formData  string  false  "Free-text preferences"
// @Param        telegram_id  formData  int     false  "Telegram user id to record the consultation for"
// @Success      200          {object}  Response
// @Failure      400          {object}  api.ErrorResponse
// @Failure      503          {object}  api.ErrorResponse
// @Router       /api/v1/compare-outfits [post]
func (h *Handler) CompareOutfits(c *gin.Context) {
	form, ok := h.parseForm(c)
	if !ok {
		return
	}

	files := append([]*multipart.FileHeader{}, form.File["images"]...)
	for i := 0; i < stylist.MaxCompareImages; i++ {
		files = append(files, form.File[fmt.Sprintf("image_%d", i)]...)
	}
	if len(files) < stylist.MinCompareImages || len(files) > stylist.MaxCompareImages {
		api.Error(c, http.StatusBadRequest, api.CodeInvalidImageCount,
			fmt.Sprintf("Для сравнения необходимо от %d до %d изображений. Получено: %d",
				stylist.MinCompareImages, stylist.MaxCompareImages, len(files)))
		return
	}
	if !h.requireConfigured(c) {
		return
	}

	req, ok := h.buildRequest(c, form, files)
	if !ok {
		return
	}

	result, err := h.svc.Compare(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newResponse(req, result))
}

func (h *Handler) parseForm(c *gin.Context) (*multipart.Form, bool) {
	limit := h.maxImageBytes*int64(stylist.MaxCompareImages) + 1<<20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Error(c, http.StatusRequestEntityTooLarge, api.CodeInvalidImage, "Слишком большой запрос")
			return nil, false
		}
		api.BadRequest(c, "Ожидается multipart/form-data с изображениями")
		return nil, false
	}
	return form, true
}

func (h *Handler) requireConfigured(c *gin.Context) bool {
	if h.svc.Configured() {
		return true
	}
	api.Error(c, http.StatusServiceUnavailable, api.CodeAIUnavailable, "Сервис ИИ не настроен. Попробуйте позже.")
	return false
}

func (h *Handler) buildRequest(c *gin.Context, form *multipart.Form, files []*multipart.FileHeader) (Request, bool) {
	req := Request{
		Occasion:    firstValue(form, "occasion"),
		Preferences: firstValue(form, "preferences"),
	}

	if raw := firstValue(form, "telegram_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			api.BadRequest(c, "Некорректный telegram_id")
			return Request{}, false
		}
		req.TelegramID = id
	}

	for i, fh := range files {
		img, err := h.readImage(fh)
		if err != nil {
			api.Error(c, http.StatusBadRequest, api.CodeInvalidImage, fmt.Sprintf("Изображение %d: %s", i+1, err.Error()))
			return Request{}, false
		}
		req.Images = append(req.Images, img)
	}

	return req, true
}

func (h *Handler) readImage(fh *multipart.FileHeader) (Image, error) {
	contentType := strings.ToLower(fh.Header.Get("Content-Type"))
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	if !allowedContentTypes[contentType] {
		return Image{}, fmt.Errorf("%w: неподдерживаемый формат %q", errInvalidUpload, contentType)
	}
	if fh.Size == 0 {
		return Image{}, fmt.Errorf("%w: пустой файл", errInvalidUpload)
	}
	if h.maxImageBytes > 0 && fh.Size > h.maxImageBytes {
		return Image{}, fmt.Errorf("%w: файл слишком большой (максимум %d КБ)", errInvalidUpload, h.maxImageBytes>>10)
	}

	f, err := fh.Open()
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", errInvalidUpload, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", errInvalidUpload, err)
	}

	return Image{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stylist.ErrNotConfigured):
		api.Error(c, http.StatusServiceUnavailable, api.CodeAIUnavailable, "Сервис ИИ не настроен. Попробуйте позже.")
	case errors.Is(err, stylist.ErrImageCount):
		api.Error(c, http.StatusBadRequest, api.CodeInvalidImageCount, "Для сравнения необходимо от 2 до 5 изображений")
	case errors.Is(err, stylist.ErrInvalidImage):
		api.Error(c, http.StatusBadRequest, api.CodeInvalidImage, "Не удалось обработать изображение")
	case errors.Is(err, wallet.ErrInsufficientBalance):
		api.Error(c, http.StatusPaymentRequired, api.CodeInsufficientBalance, "Недостаточно STCoins для консультации")
	case errors.Is(err, stylist.ErrBlocked):
		api.Error(c, http.StatusUnprocessableEntity, api.CodeAIResponseError, "Запрос отклонён политикой безопасности модели")
	case errors.Is(err, stylist.ErrErrorResponse):
		api.Error(c, http.StatusBadGateway, api.CodeAIResponseError, "Сервис ИИ вернул ошибку. Попробуйте позже.")
	case errors.Is(err, stylist.ErrPermissionDenied),
		errors.Is(err, stylist.ErrUnavailable),
		errors.Is(err, stylist.ErrQuotaExceeded),
		errors.Is(err, stylist.ErrTimeout):
		api.Error(c, http.StatusServiceUnavailable, api.CodeAIUnavailable, "Сервис ИИ временно недоступен. Попробуйте позже.")
	default:
		logger.Error("analysis failed", "error", err)
		api.Internal(c)
	}
}

func newResponse(req Request, result *Result) Response {
	return Response{
		Status:         api.StatusSuccess,
		Advice:         result.Advice,
		ConsultationID: result.ConsultationID,
		Balance:        result.Balance,
		Metadata: Metadata{
			Occasion:    normalizeOccasion(req.Occasion),
			Preferences: strings.TrimSpace(req.Preferences),
			Images:      len(req.Images),
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Cached:      result.Cached,
		},
	}
}

func firstValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}
