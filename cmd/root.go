/*
Copyright © 2025 SellerHub

*/
package cmd

import (
	"fmt"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"
	"os"
	"path/filepath"
	"sellerhub.kr/fulfillment/procure/alibaba"
	"sellerhub.kr/fulfillment/procure/cjlogistics"
	_ "sellerhub.kr/fulfillment/procure/docs"
	"sellerhub.kr/fulfillment/procure/logging"
	"sellerhub.kr/fulfillment/procure/purchase"
	"sellerhub.kr/fulfillment/procure/rabbit"
	"time"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "procure",
	Short: "Back office service for 1688 procurement and CJ shipment handling",
	Long: `Consolidates confirmed customer orders into 1688 purchase orders,
manages estimate and deposit confirmation, and propagates 1688 logistics
status and CJ tracking numbers back onto shipment records. For example:
1. Group shipment line items by 1688 seller and place one order per seller.
2. Generate estimate excel documents on request from the order office.
..
`,
	Run: func(cmd *cobra.Command, args []string) {
		initServices()

		// async estimate request consumer
		go listenerForEstimateRequest()

		// Web
		echoRoutes()
	},
}

// echoRoutes Set echo routes
// @title Procure API
// @version 1.0
// @description 1688 procurement and CJ shipment back office service.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api
func echoRoutes() {
	e := echo.New()
	// swagger
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.POST("/orders/place", purchase.PlaceOrders)
	api.POST("/estimates", purchase.CreateEstimate)
	api.POST("/estimates/:estimateNo/deposit", purchase.ConfirmDeposit)
	api.POST("/tracking/sync", purchase.SyncTracking)
	api.POST("/tracking/sync/:orderNumber", purchase.SyncTrackingOne)
	api.POST("/packing/tracking", purchase.IssueTracking)
	api.POST("/payment-links", purchase.CreatePaymentLink)
	api.POST("/accounts/reload", purchase.ReloadAccounts)

	// api exp:
	// http://localhost:{port}/api/estimate/ESTIMATE_EST20220909153131-12_20220909153131.xlsx?download=1
	api.GET("/estimate/:filename", purchase.DownloadEstimateExcel)

	port := viper.GetString("port")
	if port == "" {
		port = "7005"
	}

	fmt.Printf("Procure server started: %v", e.Start(":"+port))
}

// initServices wires the database connection and the external API clients.
func initServices() {
	db := initGlobalDatabaseConnection()

	accounts := &alibaba.DBAccountProvider{Db: db}
	if err := accounts.Reload(); err != nil {
		panic(err)
	}
	purchase.Accounts = accounts

	market := alibaba.NewClient(accounts)
	carrier := cjlogistics.NewClient(db,
		viper.GetString("cj.url"),
		viper.GetString("cj.cust-id"),
		viper.GetString("cj.biz-reg-num"),
	)

	purchase.Setup(db, market, carrier)
}

// initGlobalDatabaseConnection sets the global database connection
func initGlobalDatabaseConnection() *sqlx.DB {
	fmt.Println("init sql connection ....")
	db, err := sqlx.Open("mysql", viper.GetString("mysql.url"))

	if err != nil {
		panic(err)
	}
	// See "Important settings" section.
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	return db
}

// Estimate request queue listener
func listenerForEstimateRequest() {
	rbmq := &rabbit.Rabbit{
		Url:          viper.GetString("rabbitmq.url"),
		Exchange:     viper.GetString("rabbitmq.exchange"),
		ExchangeType: viper.GetString("rabbitmq.exchange-type"),
		Queue:        viper.GetString("rabbitmq.queue.estimate-req"),
	}

	log.Infof("Starting ... estimate request consumer: %v ", rbmq)
	rabbit.Consume(rbmq, purchase.GenerateEstimateExcel)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".procure.yaml", "config file (default is .procure.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	fmt.Println("Init vipper ...")
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".procure" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".procure")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
	// init logging
	initLogging()
}

func initLogging() {
	path, _ := os.Executable()
	_, exec := filepath.Split(path)
	fmt.Println(exec)
	logfile := fmt.Sprintf("%s/%s.log", viper.GetString("log.log-base"), exec)

	logging.InitLog(logfile, viper.GetString("log.level"))
}
