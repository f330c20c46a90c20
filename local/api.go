package local

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stegimg/util"
	"stegimg/config"
)

/*
 * package local runs the REST front-end. Every route is a thin caller
 * of the same codec the CLI uses.
 */

func NewRouter( conf *config.FullConfig, logger *util.Logger ) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = conf.ServerConfig.AllowedOrigins
	corsConfig.AllowMethods = []string{ "GET", "POST", "OPTIONS" }
	corsConfig.AllowHeaders = []string{ "Origin", "Content-Type", "Accept" }
	corsConfig.ExposeHeaders = []string{ "X-Stego-Capacity", "X-Stego-Format", "X-Stego-Checksum", "Content-Disposition" }
	router.Use( cors.New( corsConfig ) )

	h := NewStegoHandler( conf, logger )

	api := router.Group( "/api/v1" )
	{
		api.GET( "/health", h.HealthCheck )

		steg := api.Group( "/stego" )
		{
			steg.POST( "/embed", h.Embed )
			steg.POST( "/extract", h.Extract )
		}

		analysis := api.Group( "/analysis" )
		{
			analysis.POST( "/capacity", h.Capacity )
			analysis.POST( "/detect", h.Detect )
			analysis.POST( "/quality", h.Quality )
		}
	}

	return router
}

func RunApiServer( conf *config.FullConfig, logger *util.Logger ) error {
	router := NewRouter( conf, logger )
	util.DebugPrintln( util.CyanColor + "Listening and serving at address " + conf.ServerConfig.Address + util.ResetColor )
	return router.Run( conf.ServerConfig.Address )
}
