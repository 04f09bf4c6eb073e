package main

import (
	"github.com/biosecret/todopages/cmd"
)

//go:generate swag init -g main.go -o docs

// @title Todo Pages API
// @version 1.0
// @description Quản lý page và todo cho nhiều người dùng.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Giá trị dạng "Bearer <access_token>"
func main() {
	cmd.Execute()
}
