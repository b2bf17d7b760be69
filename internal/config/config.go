package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config interface {
	Init(cmd *cobra.Command) error
	Set()
}

type Video struct {
	// Dir is the root directory video paths are resolved under.
	Dir string `mapstructure:"dir"`
	// ChunkSize is the default window length in bytes when a range request
	// omits its end offset.
	ChunkSize int64 `mapstructure:"chunk-size"`
	// FFmpegBinary is the external command used for frame extraction.
	FFmpegBinary string `mapstructure:"ffmpeg-binary"`
	// MaxExtract caps concurrent frame extraction processes, <= 0 disables
	// the cap.
	MaxExtract int64 `mapstructure:"max-extract"`
}

type Server struct {
	PProf bool

	Cert   string
	Key    string
	Bind   string
	Static string
	Proxy  bool

	Video Video
}

func (Server) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().Bool("pprof", false, "enable pprof endpoint available at /debug/pprof")
	if err := viper.BindPFlag("pprof", cmd.PersistentFlags().Lookup("pprof")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("bind", "0.0.0.0:3000", "address/port/socket to serve http")
	if err := viper.BindPFlag("bind", cmd.PersistentFlags().Lookup("bind")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("cert", "", "path to the SSL cert used to secure the server")
	if err := viper.BindPFlag("cert", cmd.PersistentFlags().Lookup("cert")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("key", "", "path to the SSL key used to secure the server")
	if err := viper.BindPFlag("key", cmd.PersistentFlags().Lookup("key")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("static", "", "path to client files to serve")
	if err := viper.BindPFlag("static", cmd.PersistentFlags().Lookup("static")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("proxy", false, "allow reverse proxies")
	if err := viper.BindPFlag("proxy", cmd.PersistentFlags().Lookup("proxy")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("video.dir", "videos", "root directory served videos are read from")
	if err := viper.BindPFlag("video.dir", cmd.PersistentFlags().Lookup("video.dir")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int64("video.chunk-size", 65536, "default range window in bytes when the end offset is omitted")
	if err := viper.BindPFlag("video.chunk-size", cmd.PersistentFlags().Lookup("video.chunk-size")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("video.ffmpeg-binary", "ffmpeg", "ffmpeg binary used for frame extraction")
	if err := viper.BindPFlag("video.ffmpeg-binary", cmd.PersistentFlags().Lookup("video.ffmpeg-binary")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int64("video.max-extract", 8, "maximum concurrent frame extraction processes, <= 0 for unlimited")
	if err := viper.BindPFlag("video.max-extract", cmd.PersistentFlags().Lookup("video.max-extract")); err != nil {
		return err
	}

	return nil
}

func (s *Server) Set() {
	s.PProf = viper.GetBool("pprof")

	s.Cert = viper.GetString("cert")
	s.Key = viper.GetString("key")
	s.Bind = viper.GetString("bind")
	s.Static = viper.GetString("static")
	s.Proxy = viper.GetBool("proxy")

	s.Video.Dir = viper.GetString("video.dir")
	s.Video.ChunkSize = viper.GetInt64("video.chunk-size")
	s.Video.FFmpegBinary = viper.GetString("video.ffmpeg-binary")
	s.Video.MaxExtract = viper.GetInt64("video.max-extract")

	// defaults

	if s.Video.Dir == "" {
		s.Video.Dir = "videos"
	}

	if s.Video.ChunkSize <= 0 {
		s.Video.ChunkSize = 65536
	}

	if s.Video.FFmpegBinary == "" {
		s.Video.FFmpegBinary = "ffmpeg"
	}
}
