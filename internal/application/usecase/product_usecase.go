package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
	"github.com/jhoicas/inventario-tracker/pkg/logger"
)

// imagePrefix carpeta de las imágenes de producto en el bucket.
const imagePrefix = "productos/"

// Límites del precio: dos decimales y 12 dígitos enteros, lo que guarda NUMERIC(14,2) sin redondear.
const priceScale = 2

var maxPrice = decimal.RequireFromString("999999999999.99")

// ImageUpload imagen opcional adjunta al formulario de producto.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ProductUseCase casos de uso CRUD para productos. Las imágenes se suben al ImageStorage si está configurado.
type ProductUseCase struct {
	repo   repository.ProductRepository
	images repository.ImageStorage // nil = imágenes deshabilitadas
	log    *logger.Logger
	now    func() time.Time
}

// NewProductUseCase construye el caso de uso. images puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, images repository.ImageStorage, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, images: images, log: log.Component("products"), now: time.Now}
}

// Create valida, sube la imagen (si hay) y persiste el producto. El ID lo asigna el adaptador.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest, image *ImageUpload) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	product := &entity.Product{
		Name:      in.Name,
		Category:  in.Category,
		Stock:     in.Stock,
		MinStock:  in.MinStock,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored := uc.uploadImage(ctx, image, now)
	if stored != nil {
		product.ImageURL = stored.URL
		product.ImageObject = stored.Object
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		uc.discardImage(ctx, stored)
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Msg("producto creado")
	return dto.NewProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// Update reemplaza los campos del formulario. La imagen se conserva salvo que llegue una nueva.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest, image *ImageUpload) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	previousObject := product.ImageObject

	product.Name = in.Name
	product.Category = in.Category
	product.Stock = in.Stock
	product.MinStock = in.MinStock
	product.Price = in.Price
	product.UpdatedAt = now

	stored := uc.uploadImage(ctx, image, now)
	if stored != nil {
		product.ImageURL = stored.URL
		product.ImageObject = stored.Object
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		uc.discardImage(ctx, stored)
		return nil, err
	}
	if stored != nil && previousObject != "" {
		uc.discardImage(ctx, &repository.StoredImage{Object: previousObject})
	}
	uc.log.Info().Str("product_id", product.ID).Msg("producto actualizado")
	return dto.NewProductResponse(product), nil
}

// List devuelve todos los productos en orden de almacenamiento.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := dto.NewProductList(list)
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Delete elimina un producto por ID. Sus movimientos quedan registrados.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if product.ImageObject != "" {
		uc.discardImage(ctx, &repository.StoredImage{Object: product.ImageObject})
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}

// uploadImage sube la imagen si hay una y hay almacenamiento. Un fallo se registra y el producto
// se guarda sin imagen.
func (uc *ProductUseCase) uploadImage(ctx context.Context, image *ImageUpload, now time.Time) *repository.StoredImage {
	if image == nil || image.Body == nil {
		return nil
	}
	if uc.images == nil {
		uc.log.Warn().Str("filename", image.Filename).Msg("imagen ignorada: almacenamiento de imágenes no configurado")
		return nil
	}
	name := fmt.Sprintf("%s%d_%s", imagePrefix, now.UnixMilli(), cleanFilename(image.Filename))
	stored, err := uc.images.Upload(ctx, name, image.ContentType, image.Body)
	if err != nil {
		uc.log.Error().Err(err).Str("object", name).Msg("error subiendo la imagen")
		return nil
	}
	return stored
}

// discardImage borra un objeto que quedó sin documento que lo referencie.
func (uc *ProductUseCase) discardImage(ctx context.Context, stored *repository.StoredImage) {
	if stored == nil || stored.Object == "" || uc.images == nil {
		return
	}
	if err := uc.images.Delete(ctx, stored.Object); err != nil {
		uc.log.Error().Err(err).Str("object", stored.Object).Msg("no se pudo borrar la imagen huérfana")
	}
}

func validateProduct(in dto.ProductRequest) error {
	ve := &domain.ValidationError{}
	if err := dto.Validate(in); err != nil {
		fieldErr, ok := err.(*domain.ValidationError)
		if !ok {
			return err
		}
		ve = fieldErr
	}
	if strings.TrimSpace(in.Name) == "" && ve.Fields["name"] == "" {
		ve.Add("name", "es requerido")
	}
	switch {
	case in.Price.IsNegative():
		ve.Add("price", "no puede ser negativo")
	case in.Price.GreaterThan(maxPrice):
		ve.Add("price", "supera el máximo "+maxPrice.String())
	case !in.Price.Equal(in.Price.Round(priceScale)):
		ve.Add("price", "máximo 2 decimales")
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

func cleanFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "imagen"
	}
	return strings.ReplaceAll(base, " ", "_")
}
