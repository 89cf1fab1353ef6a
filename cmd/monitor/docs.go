package main

//go:generate swag init -g cmd/monitor/main.go -o docs

// @title           Trading Places Strategy Monitor API
// @version         0.1.0
// @description     Register and cancel conditional trading strategies; inspect execution history.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
