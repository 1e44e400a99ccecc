package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/", s.serviceInfo)
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	if s.userService != nil {
		users := s.echo.Group("/users")
		users.GET("", s.listUsers)
		users.GET("/:id", s.getUser)
		users.POST("", s.createUser, s.strictRateLimit()...)
		users.DELETE("/:id", s.deleteUser)
	}

	if s.productService != nil {
		products := s.echo.Group("/products")
		products.GET("", s.listProducts)
		products.GET("/category/:category", s.listProductsByCategory)
		products.GET("/:id", s.getProduct)
		products.POST("", s.createProduct)
		products.PUT("/:id", s.updateProduct)
		products.DELETE("/:id", s.deleteProduct)
	}
}

// endpoints describes the routes registered on this instance for GET /.
func (s *Server) endpoints() map[string]string {
	eps := map[string]string{
		"GET /metrics": "Prometheus metrics",
		"GET /health":  "Health check",
	}
	if s.userService != nil {
		eps["GET /users"] = "List all users"
		eps["GET /users/:id"] = "Get a user by ID"
		eps["POST /users"] = "Create a user (body: {name, email})"
		eps["DELETE /users/:id"] = "Delete a user"
	}
	if s.productService != nil {
		eps["GET /products"] = "List products (query: category, minPrice, maxPrice, inStock)"
		eps["GET /products/:id"] = "Get a product by ID"
		eps["GET /products/category/:category"] = "List products of a category"
		eps["POST /products"] = "Create a product"
		eps["PUT /products/:id"] = "Update some fields of a product"
		eps["DELETE /products/:id"] = "Delete a product"
	}
	return eps
}
