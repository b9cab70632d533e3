package server

import (
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"gorm.io/gorm"
)

// repository → usecase → handler を組み立てる
func Wire(gdb *gorm.DB, pageCache repository.ProductPageCache, files usecase.FileStore, v *validator.Validator) (repository.Records[model.User], []Routes) {
	//Repository（GORM実装）生成
	users := infraRepo.NewRecordsGorm[model.User](gdb)
	products := infraRepo.NewRecordsGorm[model.Product](gdb)
	details := infraRepo.NewRecordsGorm[model.ProductDetail](gdb)
	categories := infraRepo.NewRecordsGorm[model.Category](gdb)
	vendors := infraRepo.NewRecordsGorm[model.Vendor](gdb)
	carts := infraRepo.NewRecordsGorm[model.Cart](gdb)
	favorites := infraRepo.NewRecordsGorm[model.Favorite](gdb)
	purchases := infraRepo.NewRecordsGorm[model.Purchase](gdb)
	orders := infraRepo.NewRecordsGorm[model.OrderDetail](gdb)
	comments := infraRepo.NewRecordsGorm[model.ProductComment](gdb)
	notifications := infraRepo.NewRecordsGorm[model.Notification](gdb)

	productQueries := infraRepo.NewProductGormRepository(gdb)
	favoriteQueries := infraRepo.NewFavoriteGormRepository(gdb)
	inbox := infraRepo.NewNotificationGormRepository(gdb)
	txm := infraRepo.NewTxManagerGorm(gdb)

	//Usecase生成
	productUC := usecase.NewProductUsecase(products, vendors, categories, productQueries, favoriteQueries, txm, pageCache, files, v)
	detailUC := usecase.NewProductDetailUsecase(details, products, pageCache, files, v)
	categoryUC := usecase.NewCategoryUsecase(categories, pageCache, v)
	vendorUC := usecase.NewVendorUsecase(vendors, products, productQueries, pageCache, files, v)
	cartUC := usecase.NewCartUsecase(carts, products, details, v)
	favoriteUC := usecase.NewFavoriteUsecase(favorites, products, details, v)
	purchaseUC := usecase.NewPurchaseUsecase(purchases, users, details, v)
	orderUC := usecase.NewOrderDetailUsecase(orders, users, v)
	commentUC := usecase.NewCommentUsecase(comments, products, v)
	notificationUC := usecase.NewNotificationUsecase(notifications, inbox, v)

	//Handler生成
	return users, []Routes{
		handler.NewProductHandler(productUC),
		handler.NewProductDetailHandler(detailUC),
		handler.NewCategoryHandler(categoryUC),
		handler.NewVendorHandler(vendorUC),
		handler.NewCartHandler(cartUC),
		handler.NewFavoriteHandler(favoriteUC),
		handler.NewPurchaseHandler(purchaseUC, orderUC),
		handler.NewCommentHandler(commentUC),
		handler.NewNotificationHandler(notificationUC),
	}
}
