package upstream

// Legacy controller endpoints, one per resource. Paths are relative to the
// configured base URL.
const (
	EndpointLogin          = "adminController/loginController.php"
	EndpointRegister       = "adminController/registerController.php"
	EndpointProfile        = "adminController/profileController.php"
	EndpointUsers          = "adminController/usermanageController.php"
	EndpointCategories     = "adminController/categoryController.php"
	EndpointProducts       = "adminController/productController.php"
	EndpointProductDetails = "adminController/productdetailsController.php"
	EndpointCrops          = "adminController/cropController.php"
	EndpointCart           = "adminController/cartController.php"
	EndpointOrders         = "adminController/orderController.php"
	EndpointAdminOrders    = "adminController/adminordersController.php"
	EndpointMarketplace    = "adminController/marketplaceController.php"
	EndpointNotifications  = "adminController/notificationController.php"
	EndpointDashboard      = "adminController/adminController.php"

	// ProductImagePath and CropImagePath prefix the stored image filenames.
	ProductImagePath = "uploads/products/"
	CropImagePath    = "uploads/crops/"
)
