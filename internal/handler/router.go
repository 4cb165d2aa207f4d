package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	RAG *RAGHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/health", deps.RAG.Health)
	api.POST("/ingest", deps.RAG.Ingest)
	api.POST("/query", deps.RAG.Query)
}
