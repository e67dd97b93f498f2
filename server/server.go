package server

import (
	"flag"
	"fmt"
	"time"

	"riverwatch/common"
	"riverwatch/issues"
	"riverwatch/ledger"
	"riverwatch/lifecycle"
	"riverwatch/oss"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	EndPointHelp       = "/help"
	EndPointReport     = "/report"
	EndPointResolve    = "/resolve"
	EndPointGetFeed    = "/get_feed"
	EndPointGetQueue   = "/get_queue"
	EndPointGetBalance = "/get_balance"
	EndPointGetCatalog = "/get_catalog"
	EndPointRedeem     = "/redeem"
	EndPointRedeemItem = "/redeem_item"
	EndPointDonate     = "/donate"
)

var (
	serverPort   = flag.Int("port", 8080, "The port used by the service.")
	storeBackend = flag.String("store_backend", "memory", "Issue store and ledger backend, memory or mysql.")

	ossEndpoint  = flag.String("oss_endpoint", "", "Object store endpoint, host:port.")
	ossBucket    = flag.String("oss_bucket", "riverwatch", "Object store bucket for report photos.")
	ossAccessKey = flag.String("oss_access_key", "", "Object store access key.")
	ossSecretKey = flag.String("oss_secret_key", "", "Object store secret key.")
	ossUseSSL    = flag.Bool("oss_use_ssl", true, "Use TLS talking to the object store.")
)

// Service owns the store, the ledger and the lifecycle controller for its
// lifetime; handlers are methods so no package-level mutable state exists.
type Service struct {
	store issues.Store
	lgr   ledger.Ledger
	ctl   *lifecycle.Controller
}

func NewService(store issues.Store, lgr ledger.Ledger, ctl *lifecycle.Controller) *Service {
	return &Service{store: store, lgr: lgr, ctl: ctl}
}

func StartService() {
	log.Info("Starting the service...")

	uploader, err := oss.NewStore(oss.Config{
		Endpoint:  *ossEndpoint,
		AccessKey: *ossAccessKey,
		SecretKey: *ossSecretKey,
		Bucket:    *ossBucket,
		UseSSL:    *ossUseSSL,
	})
	if err != nil {
		log.Errorf("Cannot create the object store gateway: %v", err)
		return
	}

	var (
		store issues.Store
		lgr   ledger.Ledger
	)
	switch *storeBackend {
	case "mysql":
		dbc, err := common.DBConnect()
		if err != nil {
			log.Errorf("Cannot connect to MySQL: %v", err)
			return
		}
		store = issues.NewDBStore(dbc)
		lgr = ledger.NewDBLedger(dbc)
	default:
		store = issues.NewMemStore(issues.Seed())
		lgr = ledger.NewMemLedger()
	}

	ctl := lifecycle.NewController(store, lgr, uploader, nil, nil)
	svc := NewService(store, lgr, ctl)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET(EndPointHelp, svc.Help)
	router.GET(EndPointGetCatalog, svc.GetCatalog)
	router.POST(EndPointReport, svc.Report)
	router.POST(EndPointResolve, svc.Resolve)
	router.POST(EndPointGetFeed, svc.GetFeed)
	router.POST(EndPointGetQueue, svc.GetQueue)
	router.POST(EndPointGetBalance, svc.GetBalance)
	router.POST(EndPointRedeem, svc.Redeem)
	router.POST(EndPointRedeemItem, svc.RedeemItem)
	router.POST(EndPointDonate, svc.Donate)

	router.Run(fmt.Sprintf(":%d", *serverPort))
	log.Info("Finished the service. Should not ever being seen.")
}
