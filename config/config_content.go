package config

// DefaultConfigContent 默认配置文件内容，包含详细说明
const DefaultConfigContent = `# rulesets configuration

# Directory the <category>.yaml rule files are written to
output_dir: "rules"

# debug, info, warn, error
log_level: "info"

# Prometheus textfile collector output, leave empty to disable
metrics_file: ""

fetch:
  # Per-request timeout (milliseconds)
  timeout_ms: 10000
  user_agent: "rulesets/1.0"
  # Responses larger than this are rejected
  max_body_size: "50MB"
  # Request pacing across all sources, 0 = unlimited
  requests_per_second: 0

# Domain-list mode. Every category merges the domains of all its urls.
# Supported line formats: hosts (0.0.0.0 domain), adblock (||domain^), plain domain lists.
# Local files can be referenced with file:// or a plain path.
categories:
  - name: "bank"
    urls:
      - "https://raw.githubusercontent.com/malikshi/v2ray-rules-dat/rule/rule_bank-id.txt"
      - "https://raw.githubusercontent.com/AdguardTeam/AdguardFilters/master/BaseFilter/sections/banking.txt"
  - name: "ads"
    urls:
      - "https://raw.githubusercontent.com/d3ward/toolz/master/src/d3host.txt"
      - "https://easylist-downloads.adblockplus.org/easylistchina+easylist.txt"
  - name: "social"
    urls:
      - "https://raw.githubusercontent.com/malikshi/v2ray-rules-dat/rule/rule_sosmed.txt"
      - "https://raw.githubusercontent.com/ACL4SSR/ACL4SSR/master/Clash/Telegram.list"

# Keyword mode. Lines of the feed containing any keyword of a category are
# copied verbatim into that category's rule file.
geosite:
  url: "https://github.com/MetaCubeX/meta-rules-dat/releases/download/latest/geosite.dat"
  # JSON object: {"category": ["keyword", ...]}
  categories_file: "categories.json"
`
