package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"growthspring/club_lending/configs"
	"growthspring/club_lending/internal/app/handlers"
	"growthspring/club_lending/internal/app/middleware"
	"growthspring/club_lending/internal/pkg/kafka/producer"
	"growthspring/club_lending/internal/pkg/notification"
	"growthspring/club_lending/internal/pkg/pubsub"
	"growthspring/club_lending/internal/pkg/services"
	"growthspring/club_lending/internal/pkg/store"
	"growthspring/club_lending/internal/pkg/store/repository"
	"growthspring/club_lending/internal/pkg/utils/worker"
)

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			_, err := primitive.ObjectIDFromHex(fl.Field().String())
			return err == nil
		})
	}
}

func SetupRouter(workerPool *worker.WorkerPool, redisClient *redis.Client, pubsubPublisher *pubsub.PubSubPublisher) *gin.Engine {

	registerValidators()

	r := gin.Default()
	meter := otel.Meter(configs.SERVICE_NAME)
	r.Use(otelgin.Middleware(configs.SERVICE_NAME))
	r.Use(middleware.NewMetricMiddleware(meter))
	r.Use(middleware.AttachRequestDetails())

	redisAdapter := repository.NewRedisStoreAdapter(redisClient)

	memberRepo := store.NewMemberRepository()
	loanRepo := store.NewLoanRepository()
	depositRepo := store.NewDepositRepository()
	pointTxnRepo := store.NewPointTransactionRepository()
	cashLocationRepo := store.NewCashLocationRepository()

	kafkaService := producer.NewKafkaService()

	var publisher pubsub.PubSubPublisherInterface = pubsub.NoopPublisher{}
	if pubsubPublisher != nil {
		publisher = pubsubPublisher
	}
	notificationService := notification.NewNotificationServiceWithRepo(memberRepo, publisher)

	lendingConfig := configs.GetLendingConfig()
	guardTTL := time.Duration(configs.PAYMENT_GUARD_TTL_SECONDS) * time.Second

	loanService := services.NewLoanService(lendingConfig, memberRepo, loanRepo, depositRepo, pointTxnRepo, cashLocationRepo, redisAdapter, kafkaService, notificationService, workerPool, guardTTL)
	cacheTTL := time.Duration(configs.ELIGIBILITY_CACHE_TTL_SECONDS) * time.Second
	eligibilityService := services.NewEligibilityCheckService(lendingConfig, memberRepo, loanRepo, redisAdapter, cacheTTL)
	pointsService := services.NewPointsService(memberRepo, pointTxnRepo, kafkaService, workerPool)
	depositService := services.NewDepositService(memberRepo, depositRepo, cashLocationRepo, kafkaService, workerPool)

	loanHandler := handlers.NewLoanHandler(loanService)
	eligibilityHandler := handlers.NewEligibilityCheckHandler(eligibilityService)
	pointsHandler := handlers.NewPointsHandler(pointsService)
	depositHandler := handlers.NewDepositHandler(depositService)

	r.POST("/LendingServices/GrowthSpring/Loans", loanHandler.InitiateLoan)
	r.POST("/LendingServices/GrowthSpring/Loans/:LoanId/Approve", loanHandler.ApproveLoan)
	r.POST("/LendingServices/GrowthSpring/Loans/:LoanId/Cancel", loanHandler.CancelLoan)
	r.POST("/LendingServices/GrowthSpring/Loans/:LoanId/Payments", loanHandler.ProcessPayment)

	r.POST("/LendingServices/GrowthSpring/EligibilityCheck", eligibilityHandler.EligibilityCheck)

	r.POST("/LendingServices/GrowthSpring/Points/Award", pointsHandler.AwardPoints)
	r.POST("/LendingServices/GrowthSpring/Points/Redeem", pointsHandler.RedeemPoints)
	r.POST("/LendingServices/GrowthSpring/Points/Transfer", pointsHandler.TransferPoints)
	r.PUT("/LendingServices/GrowthSpring/Points/:TransactionId", pointsHandler.UpdateTransaction)
	r.DELETE("/LendingServices/GrowthSpring/Points/:TransactionId", pointsHandler.DeleteTransaction)

	r.POST("/LendingServices/GrowthSpring/Deposits", depositHandler.RecordDeposit)
	r.POST("/LendingServices/GrowthSpring/Withdrawals", depositHandler.RecordWithdrawal)

	r.GET("/LendingServices/GrowthSpring/Test", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"message": "Health Check"})
	})

	return r
}
