package http

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/application/inventory"
	"github.com/jhoicas/inventario-tracker/internal/application/usecase"
	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/pkg/logger"
)

// imageField campo del formulario multipart con la imagen del producto.
const imageField = "image"

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc        *usecase.ProductUseCase
	movements *inventory.ListMovementsUseCase
	log       *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, movements *inventory.ListMovementsUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, movements: movements, log: log}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        body   body      dto.ProductRequest  true   "Datos del producto (JSON) o campos del formulario"
// @Param        image  formData  file                false  "Imagen del producto (multipart)"
// @Success      201    {object}  dto.ProductResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, image, cleanup, err := parseProductRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer cleanup()

	out, err := h.uc.Create(c.Context(), in, image)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar producto
// @Description  Reemplaza name, category, stock, min_stock y price. La imagen se conserva si no se envía una nueva.
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      string              true   "ID del producto"
// @Param        body   body      dto.ProductRequest  true   "Formulario completo"
// @Success      200    {object}  dto.ProductResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	in, image, cleanup, err := parseProductRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer cleanup()

	out, err := h.uc.Update(c.Context(), c.Params("id"), in, image)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Sus movimientos se conservan y se muestran como "Producto desconocido".
// @Tags         products
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	out, err := h.movements.ListByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// parseProductRequest acepta JSON o multipart/form-data. cleanup cierra el archivo de imagen abierto.
func parseProductRequest(c *fiber.Ctx) (dto.ProductRequest, *usecase.ImageUpload, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		var in dto.ProductRequest
		if err := c.BodyParser(&in); err != nil {
			return in, nil, noop, domain.NewValidationError("body", "cuerpo inválido")
		}
		return in, nil, noop, nil
	}

	in, err := productFromForm(c)
	if err != nil {
		return in, nil, noop, err
	}
	fh, err := c.FormFile(imageField)
	if err != nil {
		return in, nil, noop, nil
	}
	image, cleanup, err := openImage(fh)
	if err != nil {
		return in, nil, noop, err
	}
	return in, image, cleanup, nil
}

func productFromForm(c *fiber.Ctx) (dto.ProductRequest, error) {
	ve := &domain.ValidationError{}
	atoi := func(field string) int {
		raw := strings.TrimSpace(c.FormValue(field))
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			ve.Add(field, "debe ser un número entero")
		}
		return n
	}

	in := dto.ProductRequest{
		Name:     c.FormValue("name"),
		Category: c.FormValue("category"),
		Stock:    atoi("stock"),
		MinStock: atoi("min_stock"),
	}
	if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			ve.Add("price", "debe ser un número")
		}
		in.Price = price
	}
	if !ve.Empty() {
		return in, ve
	}
	return in, nil
}

func openImage(fh *multipart.FileHeader) (*usecase.ImageUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, domain.NewValidationError(imageField, "no se pudo leer el archivo")
	}
	return &usecase.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
