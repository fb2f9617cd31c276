package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chicknext/chicknext/models"
	"github.com/chicknext/chicknext/utils"
)

// defaultImagePath is the front end's placeholder for products without an
// uploaded image on list endpoints.
const defaultImagePath = "/img/default-image.png"

// ProductController handles CRUD, category listing, and filtered search over
// menu items.
type ProductController struct {
	db           *gorm.DB
	store        *utils.UploadStore
	redirectBase string
}

// NewProductController creates a ProductController.
func NewProductController(db *gorm.DB, store *utils.UploadStore, redirectBase string) *ProductController {
	return &ProductController{db: db, store: store, redirectBase: redirectBase}
}

// uploadURL builds the absolute URL of an uploaded image for the requesting
// client.
func uploadURL(ctx *gin.Context, image string) string {
	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/uploads/%s", scheme, ctx.Request.Host, image)
}

// annotateList fills imageUrl for list responses: absolute upload URL or the
// default placeholder.
func annotateList(ctx *gin.Context, products []models.Product) {
	for i := range products {
		p := &products[i]
		if p.Image != nil && *p.Image != "" {
			u := uploadURL(ctx, *p.Image)
			p.ImageURL = &u
		} else {
			d := defaultImagePath
			p.ImageURL = &d
		}
	}
}

// List returns all products with imageUrl annotation.
func (p *ProductController) List(ctx *gin.Context) {
	var products []models.Product
	if err := p.db.Find(&products).Error; err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error fetching products")
		return
	}
	annotateList(ctx, products)
	ctx.JSON(http.StatusOK, products)
}

// Get returns a single product. Unlike List, a product without an image gets
// imageUrl null rather than the default placeholder.
func (p *ProductController) Get(ctx *gin.Context) {
	var product models.Product
	if err := p.db.First(&product, "foodid = ?", ctx.Param("foodid")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Text(ctx, http.StatusNotFound, "Product not found")
			return
		}
		utils.Text(ctx, http.StatusInternalServerError, "Error fetching product data")
		return
	}
	if product.Image != nil && *product.Image != "" {
		u := uploadURL(ctx, *product.Image)
		product.ImageURL = &u
	}
	ctx.JSON(http.StatusOK, product)
}

// ListByCategory returns products whose category matches exactly.
func (p *ProductController) ListByCategory(ctx *gin.Context) {
	var products []models.Product
	if err := p.db.Where("category = ?", ctx.Param("category")).Find(&products).Error; err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error fetching products")
		return
	}
	annotateList(ctx, products)
	ctx.JSON(http.StatusOK, products)
}

// Search filters products by conjunctively AND-ing the optional predicates
// onto an always-true base, so every parameter can be applied uniformly.
func (p *ProductController) Search(ctx *gin.Context) {
	tx := p.db.Where("1 = 1")

	if q := ctx.Query("query"); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("(LOWER(foodname) LIKE ? OR LOWER(category) LIKE ?)", pattern, pattern)
	}

	if category := ctx.Query("category"); category != "" && category != "None" {
		tx = tx.Where("category = ?", category)
	}

	// Unrecognized price values apply no filter.
	switch ctx.Query("price") {
	case "less than 50฿":
		tx = tx.Where("price < ?", 50)
	case "50฿ - 100฿":
		tx = tx.Where("price BETWEEN ? AND ?", 50, 100)
	case "more than 100฿":
		tx = tx.Where("price > ?", 100)
	}

	if ctx.Query("promotion") == "true" {
		tx = tx.Where("promotion = ?", true)
	}

	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error fetching products")
		return
	}
	annotateList(ctx, products)
	ctx.JSON(http.StatusOK, products)
}

// Create inserts a product from a multipart form and redirects the browser
// to the menu administration page.
func (p *ProductController) Create(ctx *gin.Context) {
	price, err := strconv.ParseFloat(ctx.PostForm("price"), 64)
	if err != nil {
		utils.Text(ctx, http.StatusBadRequest, "Invalid price")
		return
	}

	product := models.Product{
		FoodName: utils.SanitizeText(ctx.PostForm("menuName")),
		Detail:   utils.SanitizeText(ctx.PostForm("description")),
		Price:    price,
		Category: utils.SanitizeText(ctx.PostForm("category")),
	}

	if fh, err := ctx.FormFile("menuImage"); err == nil {
		name, err := p.store.Save(fh)
		if err != nil {
			utils.Text(ctx, http.StatusInternalServerError, "Error adding product")
			return
		}
		product.Image = &name
	}

	if err := p.db.Create(&product).Error; err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error adding product")
		return
	}
	ctx.Redirect(http.StatusFound, p.redirectBase+"/menu_admin")
}

// Update has two branches: without a new image only the data fields change;
// with one, the image reference is overwritten and the previous file is
// handed to the best-effort removal queue. The old-file lookup and the row
// update are independent: cleanup problems never block the response, a row
// update failure always does.
func (p *ProductController) Update(ctx *gin.Context) {
	id := ctx.Param("foodid")

	price, err := strconv.ParseFloat(ctx.PostForm("price"), 64)
	if err != nil {
		utils.Text(ctx, http.StatusBadRequest, "Invalid price")
		return
	}

	updates := map[string]interface{}{
		"foodname": utils.SanitizeText(ctx.PostForm("menuName")),
		"detail":   utils.SanitizeText(ctx.PostForm("description")),
		"price":    price,
		"category": utils.SanitizeText(ctx.PostForm("category")),
	}

	if fh, err := ctx.FormFile("menuImage"); err == nil {
		name, err := p.store.Save(fh)
		if err != nil {
			utils.Text(ctx, http.StatusInternalServerError, "Error updating product")
			return
		}
		updates["image"] = name

		var prev models.Product
		if err := p.db.Select("image").First(&prev, "foodid = ?", id).Error; err != nil {
			utils.Sugar.Errorf("failed to look up previous image for product %s: %v", id, err)
		} else if prev.Image != nil && *prev.Image != "" {
			p.store.Remove(*prev.Image)
		}
	}

	if err := p.db.Model(&models.Product{}).Where("foodid = ?", id).Updates(updates).Error; err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error updating product")
		return
	}
	utils.Text(ctx, http.StatusOK, "Product updated successfully")
}

// Delete removes a product row and best-effort deletes its image file. A
// missing row is not an error here; the delete simply has nothing to do.
func (p *ProductController) Delete(ctx *gin.Context) {
	id := ctx.Param("foodid")

	var prev models.Product
	err := p.db.Select("image").First(&prev, "foodid = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Text(ctx, http.StatusInternalServerError, "Error fetching product")
		return
	}

	if err := p.db.Delete(&models.Product{}, "foodid = ?", id).Error; err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error deleting product")
		return
	}

	if prev.Image != nil && *prev.Image != "" {
		p.store.Remove(*prev.Image)
	}
	utils.Text(ctx, http.StatusOK, "Product deleted successfully")
}
