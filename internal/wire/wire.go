package wire

import (
	"Picgram/internal/config"
	"Picgram/internal/job"
	"Picgram/internal/pkg/cron"
	"Picgram/internal/pkg/kafka"
	"Picgram/internal/pkg/minio"
	"Picgram/internal/repository"
	"Picgram/internal/service"

	"gorm.io/gorm"
)

// ApplicationContainer 封装了 worker 运行所需的所有顶级组件
type ApplicationContainer struct {
	DB           *gorm.DB
	Services     *Services
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

type Services struct {
	User       service.UserService
	Post       service.PostService
	PostAction service.PostActionService
	UserFollow service.UserFollowService
	Media      service.MediaService
}

// BuildServices 组装仓储与服务
func BuildServices(db *gorm.DB, storage service.ObjectStorage) *Services {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepo(db)
	likeRepo := repository.NewLikeRepo(db)
	followRepo := repository.NewFollowRepo(db)
	mediaRepo := repository.NewMediaRepo(db)

	return &Services{
		User:       service.NewUserService(db, userRepo, postRepo),
		Post:       service.NewPostService(postRepo, userRepo),
		PostAction: service.NewPostActionService(db, postRepo, likeRepo, commentRepo),
		UserFollow: service.NewUserFollowService(followRepo, userRepo),
		Media:      service.NewMediaService(mediaRepo, postRepo, storage),
	}
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	services := BuildServices(db, minio.NewStorage())

	cronMgr := cron.NewCronManager(
		cfg.Cron,
		job.NewPostCounterJob(services.Post),
		job.NewPostCounterFullJob(services.Post),
		job.NewMediaOrphanJob(services.Media),
	)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, services.Post, services.UserFollow)
	if err != nil {
		return nil, err
	}

	return &ApplicationContainer{
		DB:           db,
		Services:     services,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
